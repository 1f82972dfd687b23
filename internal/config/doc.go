// Package config provides configuration parsing for dialkit servers.
//
// The configuration is stored in dialkit.json. This package handles
// loading, saving, and validating it. Relative paths are resolved against
// the directory holding the file.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "0.0.0.0",
//	    "port": 4860,
//	    "shutdownTimeout": "5s",
//	    "allowedOrigins": ["http://localhost:5173"]
//	  },
//	  "panels": [
//	    {"id": "card", "file": "panels/card.json"},
//	    {"file": "panels/motion.toml"}
//	  ],
//	  "export": {
//	    "dir": "exports",
//	    "s3": {"bucket": "tuning", "prefix": "dialkit/", "region": "eu-west-1"}
//	  },
//	  "metrics": {"enabled": true},
//	  "tracing": {"enabled": false},
//	  "log": {"level": "debug", "format": "json"}
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Address:", cfg.Address())
package config
