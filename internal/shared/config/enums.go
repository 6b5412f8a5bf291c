//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package config

// AppEnv represents the application environment
// ENUM(local,production,development,testing)
type AppEnv string

// StoreDriver selects the filter store backend
// ENUM(file,sqlite,mysql,redis)
type StoreDriver string
