package service

import (
	"fmt"
	"math/rand"
)

var nicknameAdjectives = []string{
	"용감한", "슬기로운", "재빠른", "신중한", "명랑한", "조용한",
	"든든한", "날렵한", "꼼꼼한", "씩씩한", "영리한", "활발한",
}

var nicknameAnimals = []string{
	"호랑이", "고슴도치", "수달", "부엉이", "돌고래", "여우",
	"판다", "고래", "치타", "올빼미", "너구리", "매",
}

// generateNickname builds a random display name. Uniqueness is enforced by
// the caller with a retry loop against the user table.
func generateNickname() string {
	adj := nicknameAdjectives[rand.Intn(len(nicknameAdjectives))]
	animal := nicknameAnimals[rand.Intn(len(nicknameAnimals))]
	return adj + animal
}

// generateSuffixedNickname is the collision fallback: a fresh base plus a
// short numeric suffix.
func generateSuffixedNickname() string {
	return fmt.Sprintf("%s%d", generateNickname(), rand.Intn(999))
}
