// Package nlp provides the Vietnamese-aware text layer of the QA engine:
// query normalization, ordered-rule intent detection and lexical entity
// extraction. Everything here is deterministic and stateless.
package nlp
