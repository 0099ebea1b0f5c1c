package app

import "github.com/kmacinski/pocket/internal/config"

// FaviconResolvedMsg is sent when a favicon probe finishes
type FaviconResolvedMsg struct {
	Host  string
	Found bool
}

// ConfigReloadedMsg is sent when the config file changed on disk
type ConfigReloadedMsg struct {
	Config config.Config
}

// ConfigErrorMsg is sent when a reload could not be applied
type ConfigErrorMsg struct {
	Err error
}

// SearchSubmittedMsg is sent when enter is pressed in the search bar
type SearchSubmittedMsg struct {
	Query string
}

// StatusMsg replaces the status line text
type StatusMsg struct {
	Text string
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}
