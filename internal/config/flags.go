package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/guardbox/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   data directory path
//	-n int      freeze threshold (failed attempts before a freeze)
//	-f int      freeze duration, seconds
//	-v int      verification-code validity, minutes
//	-s string   session token HMAC secret key
//	-e int      session token validity, minutes
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers and converted to time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-n", "-f", "-v", "-s", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DataDir, "d", config.DataDir, "data directory path")
	fs.IntVar(&config.FreezeThreshold, "n", config.FreezeThreshold, "failed attempts before account freeze")

	freezeDuration := fs.Int("f", int(config.FreezeDuration.Seconds()), "freeze duration (in seconds)")
	codeValidityDuration := fs.Int("v", int(config.CodeValidityDuration.Minutes()), "verification code validity (in minutes)")

	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidityDuration := fs.Int("e", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.FreezeDuration = time.Duration(*freezeDuration) * time.Second
	config.CodeValidityDuration = time.Duration(*codeValidityDuration) * time.Minute
	config.SessionValidityDuration = time.Duration(*sessionValidityDuration) * time.Minute
}
