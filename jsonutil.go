// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import "encoding/json"

func decodeJSON(raw json.RawMessage, v any) error {
	return json.Unmarshal(raw, v)
}

func encodeJSON(v any) (json.RawMessage, error) {
	return json.Marshal(v)
}
