package domain

// KeyPrefix namespaces every key the service writes to the cache store.
const KeyPrefix = "studentdir:"

// DefaultSourceURL is the collection endpoint used when none is configured.
const DefaultSourceURL = "https://68a04cea6e38a02c58184c4b.mockapi.io/users"
