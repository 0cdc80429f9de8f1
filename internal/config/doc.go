// Package config provides configuration parsing for the markup tools.
//
// The configuration is stored in markup.json, found by walking up from
// the working directory. Every field is optional. This package handles
// loading, saving and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "dialect": "xhtml",
//	  "newlines": true,
//	  "newlineTags": ["table", "ul", "section"],
//	  "server": {
//	    "addr": "localhost:8080",
//	    "readTimeout": "10s",
//	    "writeTimeout": "10s",
//	    "maxBodyBytes": 1048576
//	  },
//	  "metrics": {
//	    "namespace": "markup"
//	  },
//	  "tracing": {
//	    "tracerName": "markup"
//	  },
//	  "log": {
//	    "level": "info"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc := markup.New(cfg.DialectValue(), cfg.DocOptions()...)
package config
