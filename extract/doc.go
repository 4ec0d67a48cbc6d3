// Package extract distills meeting transcripts into a two-tier list of
// validated action items. One structured model call performs the extraction
// under a contract of exclusion, candidacy and consolidation rules; all
// normalization (owner canonicalization, deadline defaulting, confidence
// bucketing) happens locally and deterministically afterwards.
//
// An empty or unparsable extraction response fails loudly: a transcript with
// real but unreported actions is a worse outcome than a visible failure.
package extract
