package broadcast

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

var ErrInvalidSubscription = errors.New("invalid subscription request")

// ChannelAuthorizer signs private-channel subscription requests. The
// signature format matches what pusher-style clients expect back from an
// auth endpoint: "key:hex(hmac-sha256(secret, socketID:channel))".
type ChannelAuthorizer struct {
	key    string
	secret []byte
}

type ChannelAuth struct {
	Auth string `json:"auth"`
}

func NewChannelAuthorizer(key, secret string) *ChannelAuthorizer {
	return &ChannelAuthorizer{key: key, secret: []byte(secret)}
}

func (a *ChannelAuthorizer) AuthorizeSubscription(socketID, channel string) (*ChannelAuth, error) {
	if socketID == "" || channel == "" {
		return nil, ErrInvalidSubscription
	}

	mac := hmac.New(sha256.New, a.secret)
	fmt.Fprintf(mac, "%s:%s", socketID, channel)

	return &ChannelAuth{
		Auth: fmt.Sprintf("%s:%s", a.key, hex.EncodeToString(mac.Sum(nil))),
	}, nil
}
