package flags

// Centralized definitions for CLI flags used across the application

const (
	// Provider flags select which configured storage backend an operation targets
	Provider      = "provider"
	ProviderShort = "p"

	// Bucket flags specify the bucket holding the images
	Bucket      = "bucket"
	BucketShort = "b"

	// Prefix flags restrict scanning to a folder path within the bucket
	Prefix = "prefix"

	// Output flags name the HTML file the generate command writes
	Output      = "output"
	OutputShort = "o"

	// Title flags set the heading of the generated page
	Title      = "title"
	TitleShort = "t"

	// PerPage flags control how many images the page shows at once
	PerPage = "per-page"

	// SignTTL flags control how long generated signed URLs stay valid
	SignTTL = "sign-ttl"

	// Publish flags upload the generated page back into the bucket
	Publish = "publish"

	// Limit flags cap how many rows list-style output prints
	Limit      = "limit"
	LimitShort = "l"

	// Force flags bypass interactive confirmation prompts
	Force      = "force"
	ForceShort = "f"

	// Debug flags enable verbose logging
	Debug      = "debug"
	DebugShort = "d"
)
