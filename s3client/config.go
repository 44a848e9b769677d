package s3client

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/kelseyhightower/envconfig"
)

const devEnvironment = "dev"

type EnvironmentConfig struct {
	BucketName  string `envconfig:"MDL_COMN_STORAGE_CONTAINER_NAME" required:"true"`
	T2PEnv      string `envconfig:"T2P_ENV" required:"true"`
	Region      string `envconfig:"MDL_COMN_AWS_REGION_NAME" required:"true"`
	AwsEndpoint string `envconfig:"MDL_COMN_AWS_ENDPOINT_URL" default:""`
	AccessKeyID string `envconfig:"MDL_COMN_AWS_ACCESS_ID" default:""`
	AccessKey   string `envconfig:"MDL_COMN_AWS_ACCESS_KEY" default:""`
}

func readEnvironment() (EnvironmentConfig, error) {
	var config EnvironmentConfig
	err := envconfig.Process("", &config)
	return config, err
}

// instanceConfig relies on the default credential chain (EC2 role and the like).
func (env EnvironmentConfig) instanceConfig() *aws.Config {
	return aws.NewConfig().
		WithRegion(env.Region).
		WithMaxRetries(4).
		WithLogLevel(aws.LogDebug)
}

// staticConfig uses the access key from the environment. In the dev
// environment a custom endpoint (e.g. a local S3 emulator) is honoured.
func (env EnvironmentConfig) staticConfig() *aws.Config {
	cfg := aws.NewConfig().
		WithRegion(env.Region).
		WithMaxRetries(4).
		WithCredentials(credentials.NewStaticCredentials(env.AccessKeyID, env.AccessKey, "")).
		WithLogLevel(aws.LogDebug)

	if env.T2PEnv == devEnvironment && env.AwsEndpoint != "" {
		cfg = cfg.WithEndpoint(env.AwsEndpoint).WithS3ForcePathStyle(true)
	}
	return cfg
}
