package s3client

import (
	"bytes"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticConfigEndpoint(t *testing.T) {
	env := EnvironmentConfig{
		Region:      "eu-central-1",
		T2PEnv:      devEnvironment,
		AwsEndpoint: "http://localhost:4566",
		AccessKeyID: "id",
		AccessKey:   "key",
	}
	cfg := env.staticConfig()
	assert.Equal(t, "http://localhost:4566", aws.StringValue(cfg.Endpoint))
	assert.True(t, aws.BoolValue(cfg.S3ForcePathStyle))
	assert.Equal(t, 4, aws.IntValue(cfg.MaxRetries))

	creds, err := cfg.Credentials.Get()
	require.NoError(t, err)
	assert.Equal(t, "id", creds.AccessKeyID)

	env.T2PEnv = "prod"
	assert.Nil(t, env.staticConfig().Endpoint)
}

func TestInstanceConfig(t *testing.T) {
	cfg := EnvironmentConfig{Region: "us-east-1"}.instanceConfig()
	assert.Equal(t, "us-east-1", aws.StringValue(cfg.Region))
	assert.Nil(t, cfg.Credentials)
}

func TestSDKLog(t *testing.T) {
	var buf bytes.Buffer
	sdkLog{zerolog.New(&buf)}.Log("DEBUG: Request s3/GetObject")
	assert.Contains(t, buf.String(), "DEBUG: Request s3/GetObject")
}
