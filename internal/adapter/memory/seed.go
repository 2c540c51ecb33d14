package memory

import "attackSimBackend/internal/core/domain"

// DefaultTargets are the demo accounts the simulator ships with.
func DefaultTargets() []domain.TargetAccount {
	return []domain.TargetAccount{
		{ID: "1", Username: "john_doe", Secret: "password123", IsActive: true},
		{ID: "2", Username: "jane_smith", Secret: "admin2024", IsActive: true},
		{ID: "3", Username: "test_user", Secret: "test1234", IsActive: true},
		{ID: "4", Username: "demo_account", Secret: "DemoPass!99", IsActive: true},
		{ID: "5", Username: "security_test", Secret: "S3cur3P@ssw0rd!", IsActive: false},
	}
}

// DefaultWordlist is a small list of common and leaked passwords.
func DefaultWordlist() []string {
	return []string{
		"password", "123456", "password123", "admin", "letmein",
		"welcome", "monkey", "dragon", "master", "qwerty",
		"login", "passw0rd", "hello", "abc123", "admin123",
		"root", "toor", "pass", "test", "guest",
		"admin2024", "password1", "iloveyou", "sunshine", "princess",
		"football", "baseball", "soccer", "hockey", "batman",
		"superman", "trustno1", "shadow", "ashley", "michael",
		"test1234", "DemoPass!99", "S3cur3P@ssw0rd!",
	}
}
