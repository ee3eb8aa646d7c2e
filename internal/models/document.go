package models

// Document is a schemaless record as submitted by the client. Packages,
// bookings and payments are stored this way; only the owner and status
// fields are read by the server.
type Document map[string]interface{}

// Owner field names.
const (
	FieldEmail     = "email"
	FieldUserEmail = "userEmail"
	FieldStatus    = "status"
	FieldID        = "_id"
)

// String returns the value of key when it holds a string.
func (d Document) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// WithoutID returns a shallow copy of d that has no _id key.
func (d Document) WithoutID() Document {
	out := make(Document, len(d))
	for k, v := range d {
		if k == FieldID {
			continue
		}
		out[k] = v
	}
	return out
}
