package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the address carries a resolvable mail
// domain. An MX record is the usual signal; a bare A/AAAA answer still
// passes because small venues often receive mail on the web host.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(strings.TrimSpace(email[at+1:]))

	if records, err := net.LookupMX(domain); err == nil && len(records) > 0 {
		return true
	}

	addrs, err := net.LookupIP(domain)
	return err == nil && len(addrs) > 0
}
