/*
Package markov builds first-order Markov chains from plain text and walks
them to produce mimic text.

A Chain maps each word to the ordered list of words observed right after it
in the source, duplicates included, so that a uniform pick from the list is a
frequency-weighted pick over the corpus. The empty string is the start key and
maps to the first word of the source.

Chains are built in memory with a Builder, walked with Walk or WalkStream, and
may optionally be exported as JSON or stored in a SQLite database.
*/
package markov
