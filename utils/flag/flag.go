/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/

package flag

import (
	"flag"
)

const (
	APIServer     = "api_server"
	FeedGenerator = "feed_generator"
)

var (
	IsDevelopment bool
	ServiceName   string
	ByPassAuth    bool
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", APIServer, "'api_server' or 'feed_generator'")
	flag.BoolVar(&ByPassAuth, "no_auth", false, "set to true to skip token verification, development only")
}

// Parse reads the registered flags from the command line. Call it from
// main, not from init: parsing at init time breaks binaries that carry
// their own flags, the test runner included.
func Parse() {
	flag.Parse()
}
