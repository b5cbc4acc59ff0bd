package domain

import "time"

const (
	FieldMemberName      = "name"
	FieldMemberEmail     = "email"
	FieldMemberPhone     = "phone"
	FieldMemberAddress   = "address"
	FieldMemberAvatarURL = "avatar_url"
)

// Member is a registered borrower.
//
// Name must contain at least one non-whitespace character and is stored as
// given. Email is an opaque contact value: no format or uniqueness rules apply.
type Member struct {
	ID MemberID

	Name      string
	Email     string
	Phone     *string
	Address   *string
	AvatarURL *string

	CreatedAt time.Time
}

// ValidateMember checks a proposed member payload.
func ValidateMember(p Payload) (Member, error) {
	r := newFieldReader("member", p)
	m := Member{
		Name:      r.nonBlankString(FieldMemberName),
		Email:     r.requiredString(FieldMemberEmail),
		Phone:     r.optionalString(FieldMemberPhone),
		Address:   r.optionalString(FieldMemberAddress),
		AvatarURL: r.optionalString(FieldMemberAvatarURL),
	}
	if err := r.err(); err != nil {
		return Member{}, err
	}
	return m, nil
}
