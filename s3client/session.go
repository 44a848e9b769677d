package s3client

import (
	"errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sts"
)

var errNoSession = errors.New("could not get S3 session")

// sessionHolder hands out the current session from a single goroutine and
// replaces it when a caller reports a failure.
type sessionHolder struct {
	env       EnvironmentConfig
	curr      *session.Session
	requestCh chan *session.Session
	errorCh   chan error
	closeCh   chan struct{}
}

func newSessionHolder(env EnvironmentConfig) (*sessionHolder, error) {
	holder := &sessionHolder{
		env:       env,
		requestCh: make(chan *session.Session),
		errorCh:   make(chan error),
		closeCh:   make(chan struct{}, 1),
	}
	if err := holder.acquire(); err != nil {
		return nil, err
	}
	go holder.serve()
	return holder, nil
}

func (holder *sessionHolder) serve() {
	for {
		select {
		case holder.requestCh <- holder.curr:
		case err := <-holder.errorCh:
			clientLogger.Error().Err(err).Msg("Caught error while using S3 session, trying to refresh it")
			if err = holder.acquire(); err != nil {
				clientLogger.Error().Err(err).Msg("Caught error while refreshing S3 session")
				continue
			}
			clientLogger.Info().Msg("Successfully refreshed session")
		case <-holder.closeCh:
			clientLogger.Info().Msg("Closing client")
			return
		}
	}
}

func (holder *sessionHolder) session() (*session.Session, error) {
	sess := <-holder.requestCh
	if sess == nil {
		return nil, errNoSession
	}
	return sess, nil
}

// refresh reports err and waits for the next session.
func (holder *sessionHolder) refresh(err error) (*session.Session, error) {
	var sess *session.Session
	select {
	case holder.errorCh <- err:
		sess = <-holder.requestCh
	case sess = <-holder.requestCh:
	}
	if sess == nil {
		return nil, errNoSession
	}
	return sess, nil
}

func (holder *sessionHolder) close() {
	holder.closeCh <- struct{}{}
}

// acquire tries instance credentials first and falls back to the static
// ones from the environment. Each candidate is checked with an STS call.
func (holder *sessionHolder) acquire() error {
	candidates := []struct {
		name string
		cfg  *aws.Config
	}{
		{"EC2", holder.env.instanceConfig()},
		{"env credentials", holder.env.staticConfig()},
	}

	var lastErr error
	for _, candidate := range candidates {
		sess, err := session.NewSession(candidate.cfg)
		if err == nil {
			_, err = sts.New(sess).GetCallerIdentity(&sts.GetCallerIdentityInput{})
		}
		if err != nil {
			clientLogger.Info().Err(err).Msgf("Could not initialize S3 session using %s", candidate.name)
			lastErr = err
			continue
		}
		holder.curr = sess
		clientLogger.Info().Msgf("S3 session successfully initialized using %s", candidate.name)
		return nil
	}
	holder.curr = nil
	return errors.Join(errors.New("could not initialize S3 session"), lastErr)
}
