package domain

// Channel is an external advertising platform a creative may run on with its
// own ad-set identifier and metric sequence.
type Channel string

const (
	ChannelMeta     Channel = "meta"
	ChannelTikTok   Channel = "tiktok"
	ChannelSnapchat Channel = "snapchat"
	ChannelAppLovin Channel = "applovin"
)

// Channels is the fixed channel list. Its order doubles as the deterministic
// tie-break when two channels report the same latest CPA: first entry wins.
var Channels = []Channel{ChannelMeta, ChannelTikTok, ChannelSnapchat, ChannelAppLovin}

// channelNames maps each channel to the name the attribution provider uses
// in its rows.
var channelNames = map[Channel]string{
	ChannelMeta:     "facebook-ads",
	ChannelTikTok:   "tiktok-ads",
	ChannelSnapchat: "snapchat-ads",
	ChannelAppLovin: "applovin",
}

// ExternalName returns the provider-side name for c, or "" when c is not a
// known channel.
func (c Channel) ExternalName() string {
	return channelNames[c]
}

// ChannelFromExternal resolves a provider-side channel name back to a local
// channel. The second return is false for unrecognised names.
func ChannelFromExternal(name string) (Channel, bool) {
	for _, ch := range Channels {
		if channelNames[ch] == name {
			return ch, true
		}
	}
	return "", false
}
