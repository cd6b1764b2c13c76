package main

import (
	"context"
	"encoding/base64"
	"html/template"
	"log/slog"
	"os"

	"github.com/gorilla/securecookie"

	"github.com/sushihentaime/cmsblog/internal/cmsservice"
	"github.com/sushihentaime/cmsblog/internal/commentservice"
	"github.com/sushihentaime/cmsblog/internal/common"
	"github.com/sushihentaime/cmsblog/internal/mailservice"
)

type application struct {
	config         *Config
	logger         *slog.Logger
	cmsService     *cmsservice.CMSService
	commentService *commentservice.CommentService
	comments       commentSubmitter
	remember       *commentservice.Remember
	mailService    *mailservice.MailService
	broker         *common.MessageBroker
	limiter        *ipRateLimiter
	templates      map[string]*template.Template
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	err := newRootCommand(logger).ExecuteContext(context.Background())
	if err != nil {
		logger.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newApplication wires the services. The message broker and mail consumer
// are only set up when withBroker is true and RABBITMQ_HOST is configured.
func newApplication(cfg *Config, logger *slog.Logger, withBroker bool) (*application, error) {
	templates, err := newTemplateCache()
	if err != nil {
		return nil, err
	}

	client := common.NewGraphQLClient(cfg.CMSEndpoint, cfg.CMSTimeout, logger)
	cache := common.NewCache(cfg.CacheTTL, cfg.CacheCleanup)

	app := &application{
		config:     cfg,
		logger:     logger,
		cmsService: cmsservice.NewCMSService(client, cache),
		limiter:    newIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		templates:  templates,
	}

	var producer common.MessageProducer
	if withBroker && cfg.MQHost != "" {
		// Create the URI and connect to the message broker
		broker, err := common.NewMessageBroker(common.BrokerURI(cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort))
		if err != nil {
			return nil, err
		}

		err = common.SetupCommentExchange(broker)
		if err != nil {
			broker.Close()
			return nil, err
		}

		app.broker = broker
		app.mailService = mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, cfg.MailModerator, cfg.SiteURL, logger)
		producer = broker
	}

	app.commentService = commentservice.NewCommentService(client, cfg.CMSToken, producer, logger)
	app.comments = app.commentService
	if cfg.CommentRelayURL != "" {
		app.comments = commentservice.NewClient(cfg.CommentRelayURL, nil)
	}

	hashKey, blockKey := app.cookieKeys()
	app.remember = commentservice.NewRemember(hashKey, blockKey, cfg.Environment == "production")

	return app, nil
}

// cookieKeys decodes the configured base64 keys. A missing hash key is
// replaced by a random one, which invalidates cookies on restart.
func (app *application) cookieKeys() ([]byte, []byte) {
	var hashKey, blockKey []byte

	if app.config.CookieHashKey != "" {
		key, err := base64.StdEncoding.DecodeString(app.config.CookieHashKey)
		if err != nil {
			app.logger.Warn("invalid COOKIE_HASH_KEY, using a random key", slog.String("error", err.Error()))
		} else {
			hashKey = key
		}
	}
	if hashKey == nil {
		hashKey = securecookie.GenerateRandomKey(32)
	}

	if app.config.CookieBlockKey != "" {
		key, err := base64.StdEncoding.DecodeString(app.config.CookieBlockKey)
		if err != nil {
			app.logger.Warn("invalid COOKIE_BLOCK_KEY, cookies will not be encrypted", slog.String("error", err.Error()))
		} else {
			blockKey = key
		}
	}

	return hashKey, blockKey
}

func (app *application) close() {
	app.limiter.stop()

	if app.mailService != nil {
		app.mailService.Close()
	}

	if app.broker != nil {
		if err := app.broker.Close(); err != nil {
			app.logger.Error("failed to close the message broker", slog.String("error", err.Error()))
		}
	}
}
