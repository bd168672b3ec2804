// Package config provides configuration parsing for lu projects.
//
// The configuration is stored in lu.json (or lu.yaml) at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "page": "index.html",
//	  "dev": {
//	    "host": "localhost",
//	    "port": 4000,
//	    "watch": ["index.html", "partials"]
//	  },
//	  "output": {
//	    "dir": "dist",
//	    "s3": {
//	      "bucket": "my-site",
//	      "prefix": "pages/",
//	      "region": "eu-west-1"
//	    }
//	  },
//	  "widgets": {
//	    "aria": true,
//	    "trigger": "dispatch",
//	    "touch": false
//	  }
//	}
//
// The same keys are accepted in YAML.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Page:", cfg.PagePath())
package config
