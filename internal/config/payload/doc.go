// Package payload provides the structured payload shapes a setting can hold
// besides plain scalars: closed numeric ranges, RGBA colors, insertion-ordered
// unique sets and sorted unique sets.
//
// All payloads are immutable values. Operations that would change a payload
// return a new one, so a payload read from a setting can be shared freely.
package payload
