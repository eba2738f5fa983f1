package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"
)

func main() {
	configFilePath := flag.String("configfile", "", "Configuration File Path")
	dryRun := flag.Bool("dryrun", false, "Decide which objects need a backup without uploading")
	flag.Parse()

	if *configFilePath == "" {
		panic("Required flag -configfile not set but required")
	}

	appConfig, configErr := LoadConfig(*configFilePath)
	if configErr != nil {
		panic(configErr)
	}

	log.SetOutput(os.Stdout)
	level, levelErr := log.ParseLevel(appConfig.LogLevel)
	if levelErr != nil {
		panic(levelErr)
	}
	log.SetLevel(level)

	log.Info("Loaded config:")
	for _, line := range appConfig.ConfigStringArray() {
		log.Info(line)
	}

	bucketClient, clientErr := appConfig.ClientFromConfig()
	if clientErr != nil {
		panic(clientErr)
	}

	var notifier Notifier
	if appConfig.Notify.ID != "" {
		var notifierErr error
		notifier, notifierErr = NewSNSNotifier(appConfig)
		if notifierErr != nil {
			panic(fmt.Errorf("Error creating sns client: %w", notifierErr))
		}
	}

	runner := NewRunner(bucketClient, appConfig, notifier, *dryRun)

	if appConfig.At == "" {
		if _, runErr := runner.Run(appConfig.ObjectsToStore); runErr != nil {
			log.Error(fmt.Sprintf("Backup run failed: %s", runErr))
			os.Exit(1)
		}
		return
	}

	scheduler := gocron.NewScheduler(time.Local)
	_, scheduleErr := scheduler.Cron(appConfig.At).SingletonMode().Do(func() {
		if _, runErr := runner.Run(appConfig.ObjectsToStore); runErr != nil {
			log.Error(fmt.Sprintf("Backup run failed: %s", runErr))
		}
	})
	if scheduleErr != nil {
		panic(fmt.Errorf("Error scheduling backup run %q: %w", appConfig.At, scheduleErr))
	}
	log.Info(fmt.Sprintf("Backup run scheduled at %s", appConfig.At))
	scheduler.StartBlocking()
}
