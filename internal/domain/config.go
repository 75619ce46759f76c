package domain

// KeyPrefix prefixes every Redis key owned by notedex.
const KeyPrefix = "notedex:"
