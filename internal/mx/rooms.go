package mx

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Room is a joined room with its human-facing identifiers.
type Room struct {
	ID    string
	Name  string
	Alias string
}

// DisplayName prefers the room name, then the alias, then the raw id.
func (r Room) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	if r.Alias != "" {
		return r.Alias
	}
	return r.ID
}

// ResolveAlias resolves a #room:server alias to its room id.
func (c *Client) ResolveAlias(ctx context.Context, alias string) (string, error) {
	var out struct {
		RoomID string `json:"room_id"`
	}
	if err := c.get(ctx, "/directory/room/"+url.PathEscape(alias), nil, &out); err != nil {
		return "", fmt.Errorf("resolve %s: %w", alias, err)
	}
	return out.RoomID, nil
}

// JoinedRooms lists every joined room with name and canonical alias filled
// in where the room state declares them.
func (c *Client) JoinedRooms(ctx context.Context) ([]Room, error) {
	var out struct {
		JoinedRooms []string `json:"joined_rooms"`
	}
	if err := c.get(ctx, "/joined_rooms", nil, &out); err != nil {
		return nil, err
	}

	rooms := make([]Room, 0, len(out.JoinedRooms))
	for _, id := range out.JoinedRooms {
		room := Room{ID: id}

		var name struct {
			Name string `json:"name"`
		}
		if err := c.get(ctx, "/rooms/"+url.PathEscape(id)+"/state/m.room.name", nil, &name); err == nil {
			room.Name = name.Name
		}
		var alias struct {
			Alias string `json:"alias"`
		}
		if err := c.get(ctx, "/rooms/"+url.PathEscape(id)+"/state/m.room.canonical_alias", nil, &alias); err == nil {
			room.Alias = alias.Alias
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// FindRoom resolves a user-supplied room reference: a !id is used as-is, a
// #alias goes through the directory, and anything else is matched against
// joined room names and aliases (exact first, then substring).
func (c *Client) FindRoom(ctx context.Context, ref string) (string, error) {
	switch {
	case strings.HasPrefix(ref, "!"):
		return ref, nil
	case strings.HasPrefix(ref, "#"):
		return c.ResolveAlias(ctx, ref)
	}

	rooms, err := c.JoinedRooms(ctx)
	if err != nil {
		return "", err
	}
	needle := strings.ToLower(ref)

	for _, r := range rooms {
		if strings.ToLower(r.Name) == needle || strings.ToLower(r.Alias) == needle {
			return r.ID, nil
		}
		// "agent-work" should match "#agent-work:server".
		if r.Alias != "" {
			local := strings.TrimPrefix(strings.SplitN(r.Alias, ":", 2)[0], "#")
			if strings.ToLower(local) == needle {
				return r.ID, nil
			}
		}
	}

	var matches []Room
	for _, r := range rooms {
		if strings.Contains(strings.ToLower(r.Name), needle) ||
			strings.Contains(strings.ToLower(r.Alias), needle) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0].ID, nil
	case 0:
		return "", fmt.Errorf("no joined room matches %q", ref)
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.DisplayName()
		}
		return "", fmt.Errorf("room %q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}
