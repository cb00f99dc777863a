package utils

import (
	"math/rand"
)

var passwordCharacters = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomPassword 生成指定长度的随机密码，供 seed 使用
func GenerateRandomPassword(length int) string {
	password := make([]byte, length)
	for i := range password {
		password[i] = passwordCharacters[rand.Intn(len(passwordCharacters))]
	}
	return string(password)
}
