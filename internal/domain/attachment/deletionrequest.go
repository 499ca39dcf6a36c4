package attachment

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"stagedesk/internal/shared/authorization"
)

// RequestStatus is the deletion-request lifecycle:
// pending -> approved -> used, or pending -> rejected. Nothing moves
// backwards.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
	RequestUsed     RequestStatus = "used"
)

func (s RequestStatus) String() string {
	return string(s)
}

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected, RequestUsed:
		return true
	}
	return false
}

// ApproverPolicy decides which team reviews a deletion request. It is a
// pluggable policy function so the review mapping can change without
// touching the workflow.
type ApproverPolicy func(requesterRole authorization.UserRole, ticketCreatorRole authorization.UserRole) authorization.UserRole

// DefaultApproverPolicy routes every request to the requester's peer team:
// growth deletions are reviewed by ops and vice versa. Admin requests go to
// the ticket creator's peer team so an admin never reviews their own request.
func DefaultApproverPolicy(requesterRole, ticketCreatorRole authorization.UserRole) authorization.UserRole {
	if requesterRole.IsAdmin() {
		return ticketCreatorRole.PeerRole()
	}
	return requesterRole.PeerRole()
}

// OTPExpiry is how long a minted confirmation code stays redeemable.
const OTPExpiry = 10 * time.Minute

// GenerateOTP mints a numeric one-time code of the given length.
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("otp length must be positive")
	}
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate otp digit: %w", err)
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}

// HashOTP returns the stored form of an OTP. Only the hash is persisted.
func HashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// DeletionRequest is the two-party approval aggregate guarding attachment
// deletion.
type DeletionRequest struct {
	id              uint
	attachmentID    uint
	ticketID        uint
	requesterID     uint
	requesterRole   authorization.UserRole
	approverRole    authorization.UserRole
	status          RequestStatus
	reason          string
	rejectionReason string
	otpHash         string
	otpExpiresAt    *time.Time
	decidedBy       *uint
	decidedAt       *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

func NewDeletionRequest(
	attachmentID uint,
	ticketID uint,
	requesterID uint,
	requesterRole authorization.UserRole,
	approverRole authorization.UserRole,
	reason string,
) (*DeletionRequest, error) {
	if attachmentID == 0 {
		return nil, fmt.Errorf("attachment ID is required")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if requesterID == 0 {
		return nil, fmt.Errorf("requester ID is required")
	}
	if !requesterRole.IsValid() {
		return nil, fmt.Errorf("invalid requester role: %s", requesterRole)
	}
	if !approverRole.IsValid() {
		return nil, fmt.Errorf("invalid approver role: %s", approverRole)
	}
	if approverRole == requesterRole {
		return nil, fmt.Errorf("approver role must differ from requester role")
	}
	if len(reason) == 0 {
		return nil, fmt.Errorf("deletion reason is required")
	}

	now := time.Now().UTC()

	return &DeletionRequest{
		attachmentID:  attachmentID,
		ticketID:      ticketID,
		requesterID:   requesterID,
		requesterRole: requesterRole,
		approverRole:  approverRole,
		status:        RequestPending,
		reason:        reason,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructDeletionRequest(
	id uint,
	attachmentID uint,
	ticketID uint,
	requesterID uint,
	requesterRole authorization.UserRole,
	approverRole authorization.UserRole,
	status RequestStatus,
	reason string,
	rejectionReason string,
	otpHash string,
	otpExpiresAt *time.Time,
	decidedBy *uint,
	decidedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*DeletionRequest, error) {
	if id == 0 {
		return nil, fmt.Errorf("deletion request ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid deletion request status: %s", status)
	}

	return &DeletionRequest{
		id:              id,
		attachmentID:    attachmentID,
		ticketID:        ticketID,
		requesterID:     requesterID,
		requesterRole:   requesterRole,
		approverRole:    approverRole,
		status:          status,
		reason:          reason,
		rejectionReason: rejectionReason,
		otpHash:         otpHash,
		otpExpiresAt:    otpExpiresAt,
		decidedBy:       decidedBy,
		decidedAt:       decidedAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (r *DeletionRequest) ID() uint                              { return r.id }
func (r *DeletionRequest) AttachmentID() uint                    { return r.attachmentID }
func (r *DeletionRequest) TicketID() uint                        { return r.ticketID }
func (r *DeletionRequest) RequesterID() uint                     { return r.requesterID }
func (r *DeletionRequest) RequesterRole() authorization.UserRole { return r.requesterRole }
func (r *DeletionRequest) ApproverRole() authorization.UserRole  { return r.approverRole }
func (r *DeletionRequest) Status() RequestStatus                 { return r.status }
func (r *DeletionRequest) Reason() string                        { return r.reason }
func (r *DeletionRequest) RejectionReason() string               { return r.rejectionReason }
func (r *DeletionRequest) OTPHash() string                       { return r.otpHash }
func (r *DeletionRequest) OTPExpiresAt() *time.Time              { return r.otpExpiresAt }
func (r *DeletionRequest) DecidedBy() *uint                      { return r.decidedBy }
func (r *DeletionRequest) DecidedAt() *time.Time                 { return r.decidedAt }
func (r *DeletionRequest) CreatedAt() time.Time                  { return r.createdAt }
func (r *DeletionRequest) UpdatedAt() time.Time                  { return r.updatedAt }

func (r *DeletionRequest) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("deletion request ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("deletion request ID cannot be zero")
	}
	r.id = id
	return nil
}

// CanBeDecidedBy reports whether the given role matches the assigned
// approver role. The requester's own role never qualifies by construction.
func (r *DeletionRequest) CanBeDecidedBy(role authorization.UserRole) bool {
	return role == r.approverRole
}

// Approve transitions pending -> approved, recording the OTP hash and its
// expiry.
func (r *DeletionRequest) Approve(decidedBy uint, otpHash string, expiresAt time.Time) error {
	if r.status != RequestPending {
		return fmt.Errorf("cannot approve deletion request with status %s", r.status)
	}
	if decidedBy == 0 {
		return fmt.Errorf("approver ID is required")
	}
	if len(otpHash) == 0 {
		return fmt.Errorf("otp hash is required")
	}

	now := time.Now().UTC()
	r.status = RequestApproved
	r.otpHash = otpHash
	r.otpExpiresAt = &expiresAt
	r.decidedBy = &decidedBy
	r.decidedAt = &now
	r.updatedAt = now

	return nil
}

// Reject transitions pending -> rejected. Terminal.
func (r *DeletionRequest) Reject(decidedBy uint, reason string) error {
	if r.status != RequestPending {
		return fmt.Errorf("cannot reject deletion request with status %s", r.status)
	}
	if decidedBy == 0 {
		return fmt.Errorf("approver ID is required")
	}

	now := time.Now().UTC()
	r.status = RequestRejected
	r.rejectionReason = reason
	r.decidedBy = &decidedBy
	r.decidedAt = &now
	r.updatedAt = now

	return nil
}

// VerifyRedemption checks every redemption precondition: the request is
// approved, belongs to the attachment, was raised by the redeeming user,
// the code matches and the expiry has not passed. now is injected so expiry
// is testable.
func (r *DeletionRequest) VerifyRedemption(attachmentID, requesterID uint, otpCode string, now time.Time) error {
	if r.status != RequestApproved {
		return fmt.Errorf("deletion request is not approved")
	}
	if r.attachmentID != attachmentID {
		return fmt.Errorf("deletion request does not match attachment")
	}
	if r.requesterID != requesterID {
		return fmt.Errorf("deletion request does not belong to requester")
	}
	if r.otpExpiresAt == nil || !now.Before(*r.otpExpiresAt) {
		return fmt.Errorf("confirmation code has expired")
	}
	if !hmac.Equal([]byte(HashOTP(otpCode)), []byte(r.otpHash)) {
		return fmt.Errorf("confirmation code does not match")
	}
	return nil
}

// MarkUsed transitions approved -> used after a successful redemption.
func (r *DeletionRequest) MarkUsed() error {
	if r.status != RequestApproved {
		return fmt.Errorf("cannot mark deletion request with status %s as used", r.status)
	}
	now := time.Now().UTC()
	r.status = RequestUsed
	r.updatedAt = now
	return nil
}
