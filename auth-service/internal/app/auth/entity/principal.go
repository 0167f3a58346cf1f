package entity

import (
	"strings"
)

// Principal - аутентифицированный пользователь, восстановленный из claims
// access токена. Не персистентный: строится заново на каждый запрос и
// передаётся явно через контекст запроса, без глобального состояния.
type Principal struct {
	// UserID отсутствует (nil), если claim не удалось разобрать как число
	UserID      *int64
	Phone       string
	Role        string
	Authorities map[string]struct{}
}

// Таблица подразумеваемых ролей: роль слева дополнительно даёт полномочия
// ролей справа. Новые правила добавляются строкой в таблицу.
var impliedRoles = map[string][]string{
	RoleHeadMechanic: {RoleManager},
}

// NewPrincipal строит Principal из claims токена.
// Пустая роль заменяется на RoleDefault, множество полномочий - это
// детерминированное замыкание роли по таблице impliedRoles.
func NewPrincipal(userID *int64, phone, role string) *Principal {
	normalized := strings.ToUpper(strings.TrimSpace(role))
	if normalized == "" {
		normalized = RoleDefault
	}

	authorities := map[string]struct{}{
		"ROLE_" + normalized: {},
	}
	for _, implied := range impliedRoles[normalized] {
		authorities["ROLE_"+implied] = struct{}{}
	}

	return &Principal{
		UserID:      userID,
		Phone:       phone,
		Role:        normalized,
		Authorities: authorities,
	}
}

// HasAuthority проверяет наличие полномочия (например "ROLE_MANAGER")
func (p *Principal) HasAuthority(authority string) bool {
	_, ok := p.Authorities[authority]
	return ok
}

// HasRole проверяет наличие полномочия роли по её имени без префикса
func (p *Principal) HasRole(role string) bool {
	return p.HasAuthority("ROLE_" + strings.ToUpper(strings.TrimSpace(role)))
}

// IsGlobalAdmin - является ли пользователь администратором платформы
func (p *Principal) IsGlobalAdmin() bool {
	return p.HasRole(RoleAdmin)
}

// AuthorityList возвращает полномочия списком (для сериализации и логов)
func (p *Principal) AuthorityList() []string {
	result := make([]string, 0, len(p.Authorities))
	for a := range p.Authorities {
		result = append(result, a)
	}
	return result
}
