// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package security

import (
	"sort"
	"sync"
	"time"
)

// BlockedEntry records a blocked IP and why it was blocked.
type BlockedEntry struct {
	IPAddress string    `json:"ip_address"`
	Reason    string    `json:"reason"`
	BlockedAt time.Time `json:"blocked_at"`
}

// BlockList is a thread-safe in-memory set of blocked IP addresses.
// State is per-process: a restart clears all blocks.
type BlockList struct {
	mu      sync.RWMutex
	entries map[string]BlockedEntry

	now func() time.Time
}

// NewBlockList creates an empty block list.
func NewBlockList() *BlockList {
	return &BlockList{
		entries: make(map[string]BlockedEntry),
		now:     time.Now,
	}
}

// Block adds an IP to the block list with a reason. Blocking an
// already-blocked IP keeps the original entry.
func (b *BlockList) Block(ip, reason string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.entries[ip]; exists {
		return
	}
	b.entries[ip] = BlockedEntry{
		IPAddress: ip,
		Reason:    reason,
		BlockedAt: b.now(),
	}
}

// Unblock removes an IP from the block list. Returns true if the IP
// was blocked.
func (b *BlockList) Unblock(ip string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.entries[ip]; !exists {
		return false
	}
	delete(b.entries, ip)
	return true
}

// IsBlocked reports whether an IP is currently blocked.
func (b *BlockList) IsBlocked(ip string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, blocked := b.entries[ip]
	return blocked
}

// List returns all blocked entries sorted by IP address.
func (b *BlockList) List() []BlockedEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]BlockedEntry, 0, len(b.entries))
	for _, entry := range b.entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].IPAddress < out[j].IPAddress
	})
	return out
}

// Len returns the number of blocked IPs.
func (b *BlockList) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
