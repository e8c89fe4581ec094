/*
Package recording configures HTTP interaction recording for tests.

It decides the record mode for a test's cassette, where cassettes live,
which requests are recorded, and how secrets are scrubbed from recorded
interactions. It does not record or replay traffic itself.

	cfg, err := recording.Load()
	if err != nil {
	    t.Fatal(err)
	}
	cassette, err := recording.Derive(nil, recording.TagRecord)
	if err != nil {
	    t.Fatal(err)
	}
	mode := cassette.ModeOr(cfg.DefaultMode(false)) // "once"

	clean := cfg.Scrubber().Scrub(body, req.Header)

Environment:

	CI                              any value: never record
	VCR_RECORD                      default mode outside CI
	VCR_CASSETTE_DIR                default "testdata/cassettes"
	VCR_IGNORE_LOCALHOST            default true
	VCR_ALLOW_UNUSED_INTERACTIONS   default false
	VCR_SECRETS                     comma-separated secret variable names
*/
package recording
