// Package image reads the deployment image manifest that ships next to
// a translated application. The manifest carries the layout knobs the
// loader needs at startup: where native artifacts live, what base the
// synthetic source paths report and which entry-symbol ABI generation
// the translator targeted.
package image
