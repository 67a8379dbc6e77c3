package entity

import "time"

// NowUnixMilli returns current unix timestamp in milliseconds
func NowUnixMilli() int64 {
	return time.Now().UnixMilli()
}

// NormalizePair orders a participant pair lower-id-first.
// Conversations are stored and looked up with the normalized pair, which is
// what makes the pair lookup order-independent and lets a single unique index
// enforce one conversation per pair.
func NormalizePair(userA, userB int64) (int64, int64) {
	if userA > userB {
		return userB, userA
	}
	return userA, userB
}
