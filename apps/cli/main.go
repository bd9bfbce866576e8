package main

import (
	"log"
	"os"

	logsvc "github.com/ucvirtual/horario/services/logger"

	"github.com/ucvirtual/horario/core"
	"github.com/ucvirtual/horario/core/auth"
	"github.com/ucvirtual/horario/core/event"
	"github.com/ucvirtual/horario/core/guard"
	"github.com/ucvirtual/horario/core/restriction"
	"github.com/ucvirtual/horario/core/schedule"
	"github.com/ucvirtual/horario/core/session"
	"github.com/ucvirtual/horario/core/user"
	"github.com/ucvirtual/horario/storage/kv"
	"github.com/ucvirtual/horario/storage/rest"
)

func main() {
	std := log.New(os.Stderr, "HORARIO : ", log.LstdFlags)

	conf, err := core.NewConfig()
	if err != nil {
		std.Fatal(err)
	}

	var logger core.Logger
	if conf.Rollbar.Token != "" {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewStdLogger(std)
	}

	var store kv.Store
	if conf.Redis.Addr != "" {
		rstore, err := kv.NewRedisStore(conf)
		if err != nil {
			logger.Fatal("connecting to redis", err)
		}
		defer rstore.Close()
		store = rstore
	} else {
		store = kv.NewFileStore(conf.Storage.Path)
	}

	sessions := session.NewStore(store, []byte(conf.Storage.SessionKey))
	client := rest.NewClient(conf, sessions)

	gateway := auth.NewGateway(rest.NewAuthRepository(client), sessions, logger)

	cli := commandLine{
		logger:       logger,
		sessions:     sessions,
		gateway:      gateway,
		guard:        guard.New(sessions, gateway, guard.DefaultRoutes),
		agenda:       schedule.NewModel(store),
		restrictions: restriction.NewManager(rest.NewRestrictionRepository(client)),
		events:       event.NewService(rest.NewEventRepository(client)),
		users:        user.NewService(rest.NewUserRepository(client)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			printError(err)
		}
		os.Exit(1)
	}
}
