// Package config provides configuration parsing for vlist.
//
// The configuration is stored in vlist.json. Every field is optional;
// missing fields keep the defaults returned by New.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "0.0.0.0",
//	    "port": 8080,
//	    "shutdownTimeout": "10s"
//	  },
//	  "log": {"level": "debug"},
//	  "metrics": {"enabled": true, "namespace": "vlist"},
//	  "tracing": {"tracerName": "github.com/vango-dev/vlist"},
//	  "snapshots": {
//	    "dir": "snapshots",
//	    "s3": {
//	      "bucket": "vlist-snapshots",
//	      "prefix": "dev/",
//	      "region": "us-east-1",
//	      "endpoint": "http://localhost:9000",
//	      "pathStyle": true
//	    }
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
