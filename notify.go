package main

type Notifier interface {
	NotifyRunResults(*ResultMap) error
}
