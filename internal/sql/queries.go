// Package sql embeds the DDL and queries for the claim cache store.
package sql

import "embed"

// Migrations holds the schema files, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/cache_upsert.sql
var CacheUpsert string

//go:embed queries/cache_get.sql
var CacheGet string

//go:embed queries/cache_remove.sql
var CacheRemove string

//go:embed queries/cache_usage.sql
var CacheUsage string
