// Package config holds the CLI's own configuration file.
//
// The file (~/.redisgate/cli.yaml by default) stores named connection
// profiles and output preferences. Profile passwords are sealed at
// rest; the sealing passphrase comes from REDISGATE_CONFIG_KEY.
package config
