package mapper

import "yap-backend/internal/features/user/models"

// ToProfile maps a stored user to its public profile.
func ToProfile(user *models.User) *models.Profile {
	if user == nil {
		return nil
	}
	profile := &models.Profile{
		UserID:          user.ID,
		WalletAddress:   user.WalletAddress,
		Name:            user.Name,
		LanguageToLearn: user.LanguageToLearn,
		CreatedAt:       user.CreatedAt,
	}
	if user.Email.Valid {
		profile.Email = user.Email.String
	}
	return profile
}
