package types

// Version is the canonical project version.
// The CLI, the canonical message format, and the gateway contract share
// this version per the lockstep versioning policy.
const Version = "0.3.0"
