/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads tablestore settings from .env, an optional YAML file
// and TABLESTORE_* environment variables.
//
//	aws:
//	  region: us-east-1
//	  endpoint: http://localhost:8000
//	tables:
//	  activity_log: ActivityLog
//	query:
//	  page_size: 100
//	  parallelism: 8
//	log:
//	  level: info
package config
