// Package errors provides custom errors for types implementing Processor interface.
package errors

type (
	ServiceInitHashError struct {
		Msg string
	}
	ServiceEncodingHashError struct {
		Msg string
	}
	ServiceFoundNilStorage struct {
		Msg string
	}
	ServiceFoundNilGraph struct {
		Msg string
	}
	ServiceIncorrectCoordinates struct {
		Msg string
	}
	ServiceUnknownUnits struct {
		Msg string
	}
	ServiceUnknownRouteType struct {
		Msg string
	}
	ServiceIncorrectCourse struct {
		Msg string
	}
)

func (e *ServiceInitHashError) Error() string {
	return e.Msg
}

func (e *ServiceEncodingHashError) Error() string {
	return e.Msg
}

func (e *ServiceFoundNilStorage) Error() string {
	return e.Msg
}

func (e *ServiceFoundNilGraph) Error() string {
	return e.Msg
}

func (e *ServiceIncorrectCoordinates) Error() string {
	return e.Msg
}

func (e *ServiceUnknownUnits) Error() string {
	return e.Msg
}

func (e *ServiceUnknownRouteType) Error() string {
	return e.Msg
}

func (e *ServiceIncorrectCourse) Error() string {
	return e.Msg
}
