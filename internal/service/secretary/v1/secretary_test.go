package secretary

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/danilovkiri/dk_go_searoute/internal/config"
)

type SecretaryTestSuite struct {
	suite.Suite
	secretary *Secretary
	config    *config.Config
}

func (suite *SecretaryTestSuite) SetupTest() {
	suite.config = config.NewDefaultConfiguration()
	suite.config.UserKey = "jds__63h3_7ds"
	suite.secretary, _ = NewSecretaryService(suite.config)
}

func TestSecretaryTestSuite(t *testing.T) {
	suite.Run(t, new(SecretaryTestSuite))
}

func (suite *SecretaryTestSuite) TestEncodeDecode() {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "sample 1",
			data: "sample text string",
		},
		{
			name: "sample 2",
			data: "4d0a2c38-9a3f-4c5b-8a31-3c3f8f1b6e21",
		},
	}

	// perform each test
	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			encoded := suite.secretary.Encode(tt.data)
			assert.NotEqual(t, tt.data, encoded)
			decoded, err := suite.secretary.Decode(encoded)
			assert.NoError(t, err)
			assert.Equal(t, tt.data, decoded)
		})
	}
}

func (suite *SecretaryTestSuite) TestEncodeDeterministic() {
	// a fixed nonce makes equal inputs produce equal tokens across calls
	assert.Equal(suite.T(), suite.secretary.Encode("user-token"), suite.secretary.Encode("user-token"))
}

func (suite *SecretaryTestSuite) TestDecodeInvalid() {
	var invalidByteError hex.InvalidByteError
	tests := []struct {
		name  string
		data  string
		isHex bool
	}{
		{
			name:  "non-hex input",
			data:  "non-hex-encoded-data",
			isHex: false,
		},
		{
			name:  "truncated ciphertext",
			data:  "d078ff4765e892bc1286bc461e206256fce9061c0fffc7ae409a76a2",
			isHex: true,
		},
	}

	// perform each test
	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			res, err := suite.secretary.Decode(tt.data)
			assert.Error(t, err)
			if !tt.isHex {
				assert.ErrorAs(t, err, &invalidByteError)
			}
			assert.Equal(t, "", res)
		})
	}
}
