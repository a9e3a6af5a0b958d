package snapshot

import "fmt"

// redisSchemaKey is the key that maps a component name to the JSON schema the
// component was first registered with.
func redisSchemaKey(name string) string {
	return fmt.Sprintf("ECS:SCHEMA:%s", name)
}

// redisPackageKey is the key that maps a snapshot name to the serialized
// Package stored under it.
func redisPackageKey(name string) string {
	return fmt.Sprintf("ECS:PACKAGE:%s", name)
}
