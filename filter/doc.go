// Package filter composes query predicates: partition-key equality, field
// comparisons and conjunctions. Filters are immutable values; backends
// compile them to their native query form and String renders the textual
// form used in logs, with string literals quoted by single-quote doubling.
package filter
