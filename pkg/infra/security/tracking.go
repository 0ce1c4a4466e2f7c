package security

// TrackIP upserts the active-IP entry for a request and lazily evicts every
// entry that has gone stale, so the map stays bounded by actual traffic.
func (m *Monitor) TrackIP(reqCtx RequestContext) {
	if reqCtx.Now.IsZero() {
		reqCtx.Now = m.now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for ip, entry := range m.activeIPs {
		if reqCtx.Now.Sub(entry.LastSeen) > m.cfg.ActiveIPWindow {
			delete(m.activeIPs, ip)
		}
	}

	if entry, exists := m.activeIPs[reqCtx.IP]; exists {
		entry.LastSeen = reqCtx.Now
		entry.UserAgent = reqCtx.UserAgent
		entry.Fingerprint = reqCtx.FingerprintID
		entry.RequestCount++
		return
	}
	m.activeIPs[reqCtx.IP] = &ActiveIP{
		IP:           reqCtx.IP,
		LastSeen:     reqCtx.Now,
		UserAgent:    reqCtx.UserAgent,
		Fingerprint:  reqCtx.FingerprintID,
		RequestCount: 1,
	}
}

// TrackUserLogin records a fresh ActiveUser entry when an authenticated user
// lands after login. Repeated logins overwrite the previous device record.
func (m *Monitor) TrackUserLogin(userID string, reqCtx RequestContext) {
	if reqCtx.Now.IsZero() {
		reqCtx.Now = m.now()
	}
	device := reqCtx.Fingerprint.Device
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeUsers[userID] = &ActiveUser{
		UserID:      userID,
		Fingerprint: reqCtx.FingerprintID,
		UserAgent:   reqCtx.UserAgent,
		Platform:    device.Platform,
		Browser:     device.Browser,
		DeviceType:  device.DeviceType,
		LastSeen:    reqCtx.Now,
		LoginTime:   reqCtx.Now,
		IP:          reqCtx.IP,
	}
}

// UpdateUserActivity bumps last-seen for an authenticated user, if tracked.
func (m *Monitor) UpdateUserActivity(userID string) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, exists := m.activeUsers[userID]; exists {
		user.LastSeen = now
	}
}

// RemoveUser drops the active-user entry on logout. Entries have no TTL, so
// this call is the only way they leave the map.
func (m *Monitor) RemoveUser(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.activeUsers, userID)
}
