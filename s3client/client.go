package s3client

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/rs/zerolog"
	"text2phenotype.com/ukstem/logger"
)

var clientLogger = logger.NewLogger("S3Client")
var sdkLogger = logger.NewLogger("S3-SDK")

type Client struct {
	holder     *sessionHolder
	bucketName string
}

func New() (*Client, error) {
	env, err := readEnvironment()
	if err != nil {
		clientLogger.Err(err).Caller().Msg("Failed to get proper variables from environment")
		return nil, err
	}
	holder, err := newSessionHolder(env)
	if err != nil {
		return nil, err
	}
	return &Client{holder: holder, bucketName: env.BucketName}, nil
}

// Upload stores data under key. A failed attempt refreshes the session and
// is retried once.
func (client Client) Upload(data []byte, key string) error {
	return client.withSession(func(sess *session.Session) error {
		uploader := s3manager.NewUploader(client.sdkSession(sess, key))
		clientLogger.Debug().Str("key", key).Str("bucket", client.bucketName).Msg("Uploading the file")
		_, err := uploader.Upload(&s3manager.UploadInput{
			Bucket: aws.String(client.bucketName),
			Key:    aws.String(key),
			Body:   bytes.NewReader(data),
		})
		return err
	})
}

// Download fetches the object stored under key.
func (client Client) Download(key string) ([]byte, error) {
	var data []byte
	err := client.withSession(func(sess *session.Session) error {
		downloader := s3manager.NewDownloader(client.sdkSession(sess, key))
		buf := aws.NewWriteAtBuffer([]byte{})
		size, err := downloader.Download(buf, &s3.GetObjectInput{
			Bucket: aws.String(client.bucketName),
			Key:    aws.String(key),
		})
		if err != nil {
			return err
		}
		clientLogger.Debug().Str("key", key).Msgf("Downloaded %v bytes", size)
		data = buf.Bytes()
		return nil
	})
	return data, err
}

func (client Client) Close() {
	client.holder.close()
}

func (client Client) withSession(op func(sess *session.Session) error) error {
	sess, err := client.holder.session()
	if err != nil {
		return err
	}
	if err = op(sess); err == nil {
		return nil
	}
	sess, refreshErr := client.holder.refresh(err)
	if refreshErr != nil {
		return fmt.Errorf("%v; %w", err, refreshErr)
	}
	return op(sess)
}

func (client Client) sdkSession(sess *session.Session, key string) *session.Session {
	log := sdkLogger.With().Str("key", key).Str("bucket", client.bucketName).Logger()
	return sess.Copy(&aws.Config{Logger: sdkLog{log}})
}

// sdkLog routes aws-sdk-go debug output to zerolog.
type sdkLog struct {
	log zerolog.Logger
}

func (l sdkLog) Log(v ...interface{}) {
	l.log.Debug().Msg(fmt.Sprint(v...))
}
