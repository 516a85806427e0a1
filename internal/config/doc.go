// Package config provides configuration parsing for the dropdown host.
//
// The configuration is stored in dropdown.json. This package handles loading,
// saving, and validating it. Command-line flags override file values, and
// DROPDOWN_PORT overrides server.port.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "shutdownTimeout": "5s"
//	  },
//	  "catalog": {
//	    "source": "s3://ui-assets/fruits.json",
//	    "region": "eu-west-1"
//	  },
//	  "widget": {
//	    "title": "Pick a fruit",
//	    "className": "wide",
//	    "closeOnSelect": false
//	  },
//	  "metrics": {"enabled": true, "path": "/metrics"},
//	  "tracing": {"enabled": true},
//	  "log": {"level": "info", "format": "text"}
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
