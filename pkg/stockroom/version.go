package stockroom

// Version is the stockroom release version.
const Version = "0.4.0"

// ModulePath is the Go module path of this repository.
const ModulePath = "github.com/mesh-intelligence/stockroom"
