package hallmark

// Version is the hallmark release version, reported by the CLI.
const Version = "0.2.0"
