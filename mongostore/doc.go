// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mongostore implements engine.Store on MongoDB.

Polls, choices and votes live in the poll, choice and vote collections.
Identifiers are ObjectIDs exposed as hex strings; an id that is not valid
hex simply matches nothing. Listing sorts by _id, which follows insertion
order for documents created by one server.

EnsureIndexes must run before serving traffic: the unique index on
choice.title is what rejects concurrent duplicate titles.
*/
package mongostore
