// Package scout turns the free-form text returned by the concert
// recommendation agent into three ordered lists of display-ready concerts.
//
// A response is either a clarifying question (short, conversational, no JSON)
// or a set of labeled sections:
//
//	Concerts for Your Top Artists:
//	[ {...}, {...} ]
//
//	Concerts for Your Top Genre (Country):
//	```json
//	[ {...} ]
//	```
//
//	Concerts for Your Related Artists:
//	[ {...} ]
//
// [Parser.Parse] runs the whole pipeline: [Classifier.Classify] short-circuits
// clarifying questions, [ExtractSections] locates each labeled payload with an
// ordered list of matchers, [ParseConcertSection] decodes it, [Normalize]
// formats every record and [ExtractCommentary] recovers the prose that
// introduces each section. Every stage is stateless; a parse never
// fails, it degrades to empty sections and logs a diagnostic.
//
// [ApplyDisplayDefaults] is the separate presentation step that fills in the
// default show time and genre before rendering.
package scout
