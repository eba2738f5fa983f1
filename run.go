package main

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// ResultMap records what happened to each target of one run. Upload is keyed by object name
// and holds nil for successful uploads. Invalid is keyed by the configured path.
type ResultMap struct {
	Upload  map[string]error
	Skip    map[string]string
	Invalid map[string]error
	Fatal   error
}

func NewResultMap() *ResultMap {
	return &ResultMap{
		Upload:  make(map[string]error),
		Skip:    make(map[string]string),
		Invalid: make(map[string]error),
	}
}

func (r *ResultMap) Failed() bool {
	if r.Fatal != nil {
		return true
	}
	for _, err := range r.Upload {
		if err != nil {
			return true
		}
	}
	return false
}

type Runner struct {
	Engine   *DecisionEngine
	Executor *Executor
	Notifier Notifier
	DryRun   bool
	lock     sync.Mutex
}

func NewRunner(client BucketClient, appConfig AppConfig, notifier Notifier, dryRun bool) *Runner {
	return &Runner{
		Engine: &DecisionEngine{
			Client: client,
			Bucket: appConfig.Provider.Bucket,
			Policy: DefaultRetentionPolicy(),
		},
		Executor: &Executor{
			Client:  client,
			Bucket:  appConfig.Provider.Bucket,
			TempDir: appConfig.TempDir,
			Archive: appConfig.Archive,
		},
		Notifier: notifier,
		DryRun:   dryRun,
	}
}

// Run handles targets one after another in the given order. Config and upload errors are
// logged and recorded, then the run moves on. Any other error stops the run and is returned.
func (r *Runner) Run(targets []TargetConfig) (*ResultMap, error) {
	resultMap := NewResultMap()
	if !r.lock.TryLock() {
		log.Warn("Another backup run is already running. Skipping.")
		return resultMap, fmt.Errorf("Unable to acquire run lock")
	}
	defer r.lock.Unlock()

	log.Info(fmt.Sprintf("Backup run starting for %d objects.", len(targets)))
	runStartTime := time.Now()

	for _, target := range targets {
		if fatalErr := r.runTarget(target, resultMap); fatalErr != nil {
			log.Error(fmt.Sprintf("Backup run aborted at %s: %s", target.Path, fatalErr))
			resultMap.Fatal = fatalErr
			break
		}
	}

	log.Info(fmt.Sprintf("Backup run complete. Took %s", time.Since(runStartTime).String()))
	if r.Notifier != nil {
		if notifyErr := r.Notifier.NotifyRunResults(resultMap); notifyErr != nil {
			log.Warn(fmt.Sprintf("Error publishing run results: %s", notifyErr))
		}
	}

	return resultMap, resultMap.Fatal
}

func (r *Runner) runTarget(target TargetConfig, resultMap *ResultMap) error {
	log.Info(fmt.Sprintf("Storing %s to %s", target, r.Engine.Bucket))

	decision, decideErr := r.Engine.Decide(target)
	if isConfigError(decideErr) {
		log.Error(fmt.Sprintf("%s, skipping", decideErr))
		resultMap.Invalid[target.Path.String()] = decideErr
		return nil
	}
	if decideErr != nil {
		return decideErr
	}

	if decision.Action == ActionSkip {
		log.Info(fmt.Sprintf("Skipping %s: %s", decision.ObjectName, decision.Reason))
		resultMap.Skip[decision.ObjectName] = decision.Reason
		return nil
	}
	log.Info(fmt.Sprintf("Uploading %s: %s", decision.ObjectName, decision.Reason))

	if r.DryRun {
		log.Info(fmt.Sprintf("Dry run, not uploading %s", decision.ObjectName))
		resultMap.Skip[decision.ObjectName] = "dry run"
		return nil
	}

	uploadErr := r.Executor.Execute(target, decision.ObjectName)
	if isConfigError(uploadErr) {
		log.Error(fmt.Sprintf("%s, skipping", uploadErr))
		resultMap.Invalid[target.Path.String()] = uploadErr
		return nil
	}
	if uploadErr != nil {
		log.Warn(fmt.Sprintf("Backup upload error: %s", uploadErr))
	}
	resultMap.Upload[decision.ObjectName] = uploadErr

	return nil
}
