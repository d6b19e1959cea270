package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type port struct {
	name string
	lat  float64
	lng  float64
}

var ports = []port{
	{"Rotterdam", 51.9, 4.0},
	{"Singapore", 1.3, 103.8},
	{"Shanghai", 31.2, 121.5},
	{"New York", 40.7, -74.0},
	{"Santos", -23.9, -46.3},
	{"Cape Town", -33.9, 18.4},
	{"Sydney", -33.9, 151.2},
	{"Mumbai", 18.9, 72.8},
}

func randPortPair() (port, port) {
	i := rand.Intn(len(ports))
	j := rand.Intn(len(ports))
	for j == i {
		j = rand.Intn(len(ports))
	}
	return ports[i], ports[j]
}

func routeQuery(origin, destination port) map[string]string {
	return map[string]string{
		"start_lat": strconv.FormatFloat(origin.lat, 'f', -1, 64),
		"start_lng": strconv.FormatFloat(origin.lng, 'f', -1, 64),
		"end_lat":   strconv.FormatFloat(destination.lat, 'f', -1, 64),
		"end_lng":   strconv.FormatFloat(destination.lng, 'f', -1, 64),
	}
}

func main() {
	a := flag.String("a", "http://localhost:8000", "Server address")
	flag.Parse()
	address := *a

	const getRoute = "/route"
	const compareRoutes = "/route/compare"
	const getRouteByID = "/api/routes/"
	const getAllByUserID = "/api/user/routes"
	const deleteBatch = "/api/user/routes"
	const ping = "/ping"
	const health = "/health"
	const iterations = 20

	routeTypes := []string{"original", "guided", "optimized"}

	client := resty.New()

	// Performing health loading
	log.Println("Performing health loading")
	for i := 0; i < iterations; i++ {
		_, err := client.R().Get(address + health)
		if err != nil {
			log.Fatal(err)
		}
	}
	time.Sleep(1 * time.Second)

	// Performing ping loading
	log.Println("Performing ping loading")
	for i := 0; i < iterations; i++ {
		_, err := client.R().Get(address + ping)
		if err != nil {
			log.Fatal(err)
		}
	}
	time.Sleep(1 * time.Second)

	// Performing getRoute loading
	log.Println("Performing getRoute loading")
	var routeIDs []string
	for i := 0; i < iterations; i++ {
		origin, destination := randPortPair()
		query := routeQuery(origin, destination)
		query["route_type"] = routeTypes[i%len(routeTypes)]
		res, err := client.R().SetQueryParams(query).Get(address + getRoute)
		if err != nil {
			log.Fatal(err)
		}
		if res.StatusCode() == 200 {
			routeID := gjson.GetBytes(res.Body(), "properties.route_id").String()
			routeIDs = append(routeIDs, routeID)
		}
	}
	log.Println(routeIDs)
	time.Sleep(1 * time.Second)

	// Performing compareRoutes loading
	log.Println("Performing compareRoutes loading")
	for i := 0; i < iterations; i++ {
		origin, destination := randPortPair()
		res, err := client.R().SetQueryParams(routeQuery(origin, destination)).Get(address + compareRoutes)
		if err != nil {
			log.Fatal(err)
		}
		if res.StatusCode() == 200 {
			lengths := gjson.GetBytes(res.Body(), "*.properties.length")
			log.Println("Iteration", i, lengths.String())
		}
	}
	time.Sleep(1 * time.Second)

	// Performing getRouteByID loading
	log.Println("Performing getRouteByID loading")
	for _, routeID := range routeIDs {
		res, err := client.R().Get(address + getRouteByID + routeID)
		if err != nil {
			log.Fatal(err)
		}
		if res.StatusCode() == 200 {
			routeType := gjson.GetBytes(res.Body(), "properties.route_type").String()
			log.Println(routeID, routeType)
		}
	}
	time.Sleep(1 * time.Second)

	// Performing getAllByUserID loading
	log.Println("Performing getAllByUserID loading")
	for i := 0; i < iterations; i++ {
		res, err := client.R().Get(address + getAllByUserID)
		if err != nil {
			log.Fatal(err)
		}
		if res.StatusCode() == 200 {
			nRoutes := gjson.GetBytes(res.Body(), "#").Int()
			log.Println("Iteration", i, "routes stored:", nRoutes)
		}
	}
	time.Sleep(1 * time.Second)

	// Performing deleteBatch loading
	log.Println("Performing deleteBatch loading")
	for _, routeID := range routeIDs {
		reqBody, err := json.Marshal([]string{routeID})
		if err != nil {
			log.Fatal(err)
		}
		payload := strings.NewReader(string(reqBody))
		_, err = client.R().SetBody(payload).Delete(address + deleteBatch)
		if err != nil {
			log.Fatal(err)
		}
	}
	time.Sleep(15 * time.Second)
}
