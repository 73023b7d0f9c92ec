package config

import (
	"github.com/icinga/icinga-queryfilter/internal"
	"github.com/jessevdk/go-flags"
)

// Flags defines the CLI flags supported by the queryfilter command.
type Flags struct {
	// Version decides whether to just print the version and exit.
	Version bool `long:"version" description:"print version and exit"`
	// Config is the path to the config file.
	Config string `short:"c" long:"config" description:"path to config file"`
	// Bind renders the WHERE clause with placeholders and separate arguments instead of inline literals.
	Bind bool `short:"b" long:"bind" description:"render the WHERE clause with placeholders"`
	// Driver overrides the SQL driver of the config file.
	Driver string `short:"d" long:"driver" description:"SQL driver whose placeholder style to use"`

	Args struct {
		Filter string `positional-arg-name:"FILTER" description:"filter expression to parse"`
	} `positional-args:"yes"`
}

// ParseFlags parses the given CLI arguments, without the program name, into Flags.
//
// The config path defaults to the config.yml below the system config directory.
// Help requests are reported as an error for which flags.WroteHelp returns true.
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{Config: internal.SysConfDir + "/icinga-queryfilter/config.yml"}

	parser := flags.NewParser(f, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	return f, nil
}
