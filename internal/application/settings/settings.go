// Package settings defines application-level configuration data.
package settings

import "strings"

// KeyMapConfig defines the configuration for keybindings.
// Each value is a comma separated list of keys.
type KeyMapConfig struct {
	Up          string `yaml:"up" kong:"help='Up key',default='up,k'"`
	Down        string `yaml:"down" kong:"help='Down key',default='down,j'"`
	GroupUp     string `yaml:"group_up" kong:"help='Previous source group key',default='alt+up,K'"`
	GroupDown   string `yaml:"group_down" kong:"help='Next source group key',default='alt+down,J'"`
	Top         string `yaml:"top" kong:"help='Top key',default='ctrl+up,home,g'"`
	Bottom      string `yaml:"bottom" kong:"help='Bottom key',default='ctrl+down,end,G'"`
	Toggle      string `yaml:"toggle" kong:"help='Toggle selection key',default='space'"`
	ToggleGroup string `yaml:"toggle_group" kong:"help='Toggle source group selection key',default='V'"`
	Integrate   string `yaml:"integrate" kong:"help='Integrate key',default='enter'"`
	Snooze      string `yaml:"snooze" kong:"help='Snooze key',default='s'"`
	Archive     string `yaml:"archive" kong:"help='Archive key',default='backspace,x'"`
	SnoozeAll   string `yaml:"snooze_all" kong:"help='Snooze everything shown key',default='S'"`
	ArchiveAll  string `yaml:"archive_all" kong:"help='Archive everything shown key',default='X'"`
	Open        string `yaml:"open" kong:"help='Open source URL key',default='o'"`
	Search      string `yaml:"search" kong:"help='Search key',default='/'"`
	Similar     string `yaml:"similar" kong:"help='Search similar highlights key',default='e'"`
	Expand      string `yaml:"expand" kong:"help='Expand full source key',default='E'"`
	Back        string `yaml:"back" kong:"help='Back key',default='esc'"`
	Refresh     string `yaml:"refresh" kong:"help='Refresh key',default='r'"`
	Sync        string `yaml:"sync" kong:"help='Sync from Readwise key',default='R'"`
	Help        string `yaml:"help" kong:"help='Help key',default='?'"`
	Quit        string `yaml:"quit" kong:"help='Quit key',default='q'"`
}

// ThemeConfig defines the color theme configuration.
type ThemeConfig struct {
	Source  string `yaml:"source" kong:"help='Source header color',default='244'"`
	Checked string `yaml:"checked" kong:"help='Checked marker color',default='42'"`
	Accent  string `yaml:"accent" kong:"help='Accent color',default='205'"`
}

// ReadwiseConfig defines the highlight provider connection.
type ReadwiseConfig struct {
	Token          string `yaml:"token" kong:"help='Readwise access token',env='READWISE_TOKEN'"`
	BaseURL        string `yaml:"base_url" kong:"help='Readwise API base URL',default='https://readwise.io'"`
	TimeoutSeconds int    `yaml:"timeout_seconds" kong:"help='Request timeout in seconds',default='30'"`
}

// SearchConfig defines the semantic search backend.
type SearchConfig struct {
	URL    string `yaml:"url" kong:"help='Semantic search endpoint (empty uses local text search)'"`
	APIKey string `yaml:"api_key" kong:"help='Search API key',env='GLEAN_SEARCH_KEY'"`
	Limit  int    `yaml:"limit" kong:"help='Maximum search results',default='30'"`

	TimeoutSeconds int `yaml:"timeout_seconds" kong:"help='Search request timeout in seconds',default='15'"`
}

// ReviewConfig defines review session behavior.
type ReviewConfig struct {
	SnoozeWeeks int `yaml:"snooze_weeks" kong:"help='Snooze duration in weeks',default='4'"`
	PageSize    int `yaml:"page_size" kong:"help='Highlights per page',default='30'"`
}

// IntegrateConfig defines where integrated highlights go.
type IntegrateConfig struct {
	Clipboard      bool     `yaml:"clipboard" kong:"help='Copy integrated highlights to the clipboard',default='true'"`
	Command        string   `yaml:"command" kong:"help='Command that receives integrated highlights on stdin'"`
	Args           []string `yaml:"args" kong:"help='Arguments for the integrate command'"`
	TimeoutSeconds int      `yaml:"timeout_seconds" kong:"help='Integrate command timeout in seconds',default='10'"`
}

// LogConfig defines the log sink.
type LogConfig struct {
	File  string `yaml:"file" kong:"help='Log file path'"`
	Level string `yaml:"level" kong:"help='Log level (debug/info/warn/error)',default='info'"`
}

// Settings represents the application configuration.
type Settings struct {
	KeyMap    KeyMapConfig    `yaml:"keymap" kong:"embed,prefix='keymap.'"`
	Theme     ThemeConfig     `yaml:"theme" kong:"embed,prefix='theme.'"`
	Readwise  ReadwiseConfig  `yaml:"readwise" kong:"embed,prefix='readwise.'"`
	Search    SearchConfig    `yaml:"search" kong:"embed,prefix='search.'"`
	Review    ReviewConfig    `yaml:"review" kong:"embed,prefix='review.'"`
	Integrate IntegrateConfig `yaml:"integrate" kong:"embed,prefix='integrate.'"`
	Log       LogConfig       `yaml:"log" kong:"embed,prefix='log.'"`
	DBFile    string          `yaml:"db_file" kong:"help='Highlight database path'"`
}

// HasProvider reports whether a Readwise token is configured.
func (s Settings) HasProvider() bool {
	return strings.TrimSpace(s.Readwise.Token) != ""
}

// HasSearchBackend reports whether a semantic search endpoint is configured.
func (s Settings) HasSearchBackend() bool {
	return strings.TrimSpace(s.Search.URL) != ""
}
