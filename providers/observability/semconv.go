package observability

// Attribute keys, span names and metric names shared by all components.

// --- Parser Attributes ---

const (
	// AttrSection is the section key ("topArtists", "topGenre", "relatedArtists")
	AttrSection = "scout.section"

	// AttrClassification is the classifier outcome ("structured", "question")
	AttrClassification = "scout.classification"

	// AttrResponseLength is the length of the raw model response in runes
	AttrResponseLength = "scout.response.length"

	// AttrPayloadPreview is a truncated view of a section payload
	AttrPayloadPreview = "scout.payload.preview"

	// AttrConcertCount is the number of records recovered
	AttrConcertCount = "scout.concerts.count"

	// AttrGenreName is the genre recovered from the genre section label
	AttrGenreName = "scout.genre.name"

	// AttrStrategy is the name of the section matcher that succeeded
	AttrStrategy = "scout.strategy"
)

// --- Backend Attributes ---

const (
	// AttrSessionID is the backend chat session identifier
	AttrSessionID = "backend.session.id"

	// AttrUserID is the backend user identifier
	AttrUserID = "backend.user.id"
)

// --- HTTP Attributes ---

const (
	// AttrHTTPMethod is the HTTP method (GET, POST, etc.)
	AttrHTTPMethod = "http.method"

	// AttrHTTPStatusCode is the HTTP response status code
	AttrHTTPStatusCode = "http.status_code"

	// AttrHTTPURL is the full request URL
	AttrHTTPURL = "http.url"

	// AttrHTTPRequestBodySize is the request body size in bytes
	AttrHTTPRequestBodySize = "http.request.body.size"

	// AttrHTTPResponseBodySize is the response body size in bytes
	AttrHTTPResponseBodySize = "http.response.body.size"
)

// --- General Attributes ---

const (
	// AttrError is the error message
	AttrError = "error"

	// AttrDuration is the operation duration
	AttrDuration = "duration"

	// AttrStatus is the operation status
	AttrStatus = "status"

	// AttrStatusDescription is the status description
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	// SpanParse wraps a single parse of a model response
	SpanParse = "scout.parse"

	// SpanBackendRequest wraps a request to the agent backend
	SpanBackendRequest = "backend.request"
)

// --- Metric Names ---

const (
	// MetricSectionsMalformed counts sections whose payload failed to decode
	MetricSectionsMalformed = "scout.sections.malformed"

	// MetricConcertsParsed counts normalized concert records
	MetricConcertsParsed = "scout.concerts.parsed"

	// MetricFollowUpQuestions counts responses classified as clarifying questions
	MetricFollowUpQuestions = "scout.followup.questions"
)
