package message

import (
	"sort"
	"strings"
)

// Options is an ordered sequence of message options. The sequence is kept
// non-decreasing by option id because the wire form encodes each option as a
// delta from its predecessor. Add and Set preserve the order regardless of
// the order the caller supplies options in.
type Options []Option

const maxPathValue = 255

// Clone makes an independent deep copy.
func (options Options) Clone() Options {
	opts := make(Options, 0, len(options))
	for _, o := range options {
		v := make([]byte, len(o.Value))
		copy(v, o.Value)
		opts = opts.Add(Option{ID: o.ID, Value: v})
	}
	return opts
}

// Add inserts the option at the position given by its id, after any already
// present instances of the same id.
func (options Options) Add(opt Option) Options {
	idx := sort.Search(len(options), func(i int) bool {
		return options[i].ID > opt.ID
	})
	options = append(options, Option{})
	copy(options[idx+1:], options[idx:])
	options[idx] = opt
	return options
}

// Set replaces all instances of the option's id with the single given option.
func (options Options) Set(opt Option) Options {
	return options.Remove(opt.ID).Add(opt)
}

// Remove drops all instances of the given id.
func (options Options) Remove(id OptionID) Options {
	out := options[:0]
	for _, o := range options {
		if o.ID != id {
			out = append(out, o)
		}
	}
	return out
}

// Find returns the index range [first, last) of instances of the given id.
func (options Options) Find(id OptionID) (int, int, error) {
	first := sort.Search(len(options), func(i int) bool {
		return options[i].ID >= id
	})
	last := sort.Search(len(options), func(i int) bool {
		return options[i].ID > id
	})
	if first == last {
		return -1, -1, ErrOptionNotFound
	}
	return first, last, nil
}

// HasOption reports whether the given id is present.
func (options Options) HasOption(id OptionID) bool {
	_, _, err := options.Find(id)
	return err == nil
}

// GetBytes returns the raw value of the first instance of the given id.
func (options Options) GetBytes(id OptionID) ([]byte, error) {
	first, _, err := options.Find(id)
	if err != nil {
		return nil, err
	}
	return options[first].Value, nil
}

// GetUint32 returns the uint option value of the first instance of the given id.
func (options Options) GetUint32(id OptionID) (uint32, error) {
	first, _, err := options.Find(id)
	if err != nil {
		return 0, err
	}
	val, _, err := DecodeUint32(options[first].Value)
	return val, err
}

// GetStrings returns all values of the given id as strings, in order.
func (options Options) GetStrings(id OptionID) []string {
	first, last, err := options.Find(id)
	if err != nil {
		return nil
	}
	r := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		r = append(r, string(options[i].Value))
	}
	return r
}

// AddUint32 appends an instance of the given id carrying a uint option value.
func (options Options) AddUint32(id OptionID, value uint32) Options {
	buf := make([]byte, 4)
	enc, _ := EncodeUint32(buf, value)
	return options.Add(Option{ID: id, Value: buf[:enc]})
}

// SetUint32 replaces instances of the given id with a single uint option value.
func (options Options) SetUint32(id OptionID, value uint32) Options {
	buf := make([]byte, 4)
	enc, _ := EncodeUint32(buf, value)
	return options.Set(Option{ID: id, Value: buf[:enc]})
}

// SetContentFormat sets the Content-Format option.
func (options Options) SetContentFormat(contentFormat MediaType) Options {
	return options.SetUint32(ContentFormat, uint32(contentFormat))
}

// ContentFormat returns the Content-Format option value.
func (options Options) ContentFormat() (MediaType, error) {
	v, err := options.GetUint32(ContentFormat)
	return MediaType(v), err
}

// AddAccept appends an Accept option instance.
func (options Options) AddAccept(contentFormat MediaType) Options {
	return options.AddUint32(Accept, uint32(contentFormat))
}

// SetPath splits the URI path into segments and stores them as repeated
// Uri-Path options, one instance per segment, replacing any previous path.
func (options Options) SetPath(path string) (Options, error) {
	o := options.Remove(URIPath)
	if path == "" {
		return o, nil
	}
	if path[0] == '/' {
		path = path[1:]
	}
	if path == "" {
		return o, nil
	}
	for _, segment := range strings.Split(path, "/") {
		if len(segment) > maxPathValue {
			return options, ErrInvalidValueLength
		}
		o = o.Add(Option{ID: URIPath, Value: []byte(segment)})
	}
	return o, nil
}

// Path joins the Uri-Path options into a leading-slash path string.
func (options Options) Path() (string, error) {
	segments := options.GetStrings(URIPath)
	if segments == nil {
		return "", ErrOptionNotFound
	}
	return "/" + strings.Join(segments, "/"), nil
}

// AddQuery appends a Uri-Query option instance for one key=value term.
func (options Options) AddQuery(query string) Options {
	return options.Add(Option{ID: URIQuery, Value: []byte(query)})
}

// Queries returns all Uri-Query option values, in order.
func (options Options) Queries() []string {
	return options.GetStrings(URIQuery)
}

// Marshal serializes the options into buf using delta encoding. It returns
// the encoded length, with ErrTooSmall when buf cannot hold it.
func (options Options) Marshal(buf []byte) (int, error) {
	previousID := OptionID(0)
	length := 0

	for _, o := range options {
		if length > len(buf) {
			buf = nil
		}

		var optionLength int
		var err error
		if buf != nil {
			optionLength, err = o.Marshal(buf[length:], previousID)
		} else {
			optionLength, err = o.Marshal(nil, previousID)
		}
		previousID = o.ID

		switch {
		case err == nil:
		case err == ErrTooSmall:
			buf = nil
		default:
			return -1, err
		}
		length += optionLength
	}
	if buf == nil {
		return length, ErrTooSmall
	}
	return length, nil
}

// Unmarshal parses options from data until the payload marker or the end of
// data, reconstructing each option id by accumulating deltas. It returns the
// number of bytes processed; the payload marker, if present, is left for the
// caller.
func (m *Options) Unmarshal(data []byte) (int, error) {
	prev := 0
	processed := 0
	for len(data) > 0 {
		if data[0] == 0xff {
			break
		}

		delta := int(data[0] >> 4)
		length := int(data[0] & 0x0f)

		if delta == ExtendOptionError || length == ExtendOptionError {
			return -1, ErrOptionUnexpectedExtendMarker
		}

		data = data[1:]
		processed++

		proc, delta, err := parseExtOpt(data, delta)
		if err != nil {
			return -1, err
		}
		processed += proc
		data = data[proc:]
		proc, length, err = parseExtOpt(data, length)
		if err != nil {
			return -1, err
		}
		processed += proc
		data = data[proc:]

		if len(data) < length {
			return -1, ErrOptionTruncated
		}

		oid := OptionID(prev + delta)
		*m = m.Add(Option{ID: oid, Value: data[:length]})

		processed += length
		data = data[length:]
		prev = int(oid)
	}

	return processed, nil
}
