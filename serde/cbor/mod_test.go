package cbor

import (
	"math/big"
	"testing"
	"time"

	"github.com/sableio/sable/serde"
	"github.com/stretchr/testify/require"
)

var pointDescriptor = serde.NewObjectBuilder().
	SetSerialName("Point").
	Field(serde.NewFieldDescriptor("x", serde.KindInteger)).
	Field(serde.NewFieldDescriptor("y", serde.KindInteger)).
	Build()

func TestProvider_GetFormat(t *testing.T) {
	require.Equal(t, serde.FormatCBOR, NewProvider().GetFormat())
}

func TestProvider_MalformedPayload(t *testing.T) {
	_, err := NewProvider().Deserializer([]byte{0xFF})
	require.Error(t, err)
	require.True(t, serde.IsDecodeError(err))
}

func TestSerializer_Struct(t *testing.T) {
	ser := NewProvider().Serializer()

	st, err := ser.BeginStruct(pointDescriptor)
	require.NoError(t, err)

	require.NoError(t, st.IntField(pointDescriptor.Fields()[0], 1))
	require.NoError(t, st.IntField(pointDescriptor.Fields()[1], 2))
	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)

	// {"x": 1, "y": 2} as a definite-length map, keys in emission order.
	require.Equal(t, []byte{0xa2, 0x61, 'x', 0x01, 0x61, 'y', 0x02}, data)
}

func TestSerializer_FieldOrderPreserved(t *testing.T) {
	ser := NewProvider().Serializer()

	st, err := ser.BeginStruct(pointDescriptor)
	require.NoError(t, err)

	require.NoError(t, st.IntField(pointDescriptor.Fields()[1], 2))
	require.NoError(t, st.IntField(pointDescriptor.Fields()[0], 1))
	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0xa2, 0x61, 'y', 0x02, 0x61, 'x', 0x01}, data)
}

func TestSerializer_Misuse(t *testing.T) {
	ser := NewProvider().Serializer()

	st, err := ser.BeginStruct(pointDescriptor)
	require.NoError(t, err)

	_, err = ser.Bytes()
	require.Error(t, err)
	require.True(t, serde.IsConfigError(err))

	require.NoError(t, st.EndStruct())

	err = st.EndStruct()
	require.EqualError(t, err, "unexpected configuration: struct already closed")

	_, err = ser.Bytes()
	require.NoError(t, err)

	_, err = ser.Bytes()
	require.EqualError(t, err, "unexpected configuration: serializer already finalized")
}

func TestRoundTrip_Point(t *testing.T) {
	provider := NewProvider()

	ser := provider.Serializer()

	st, err := ser.BeginStruct(pointDescriptor)
	require.NoError(t, err)
	require.NoError(t, st.IntField(pointDescriptor.Fields()[0], 1))
	require.NoError(t, st.IntField(pointDescriptor.Fields()[1], 2))
	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)

	x, y := decodePoint(t, provider, data)
	require.Equal(t, int32(1), x)
	require.Equal(t, int32(2), y)
}

func TestDeserializer_UnknownField(t *testing.T) {
	provider := NewProvider()

	obj := serde.NewObjectBuilder().
		SetSerialName("Point").
		Field(serde.NewFieldDescriptor("x", serde.KindInteger)).
		Field(serde.NewFieldDescriptor("y", serde.KindInteger)).
		Field(serde.NewFieldDescriptor("extra", serde.KindList)).
		Build()

	ser := provider.Serializer()

	st, err := ser.BeginStruct(obj)
	require.NoError(t, err)
	require.NoError(t, st.IntField(obj.Fields()[0], 1))
	require.NoError(t, st.IntField(obj.Fields()[1], 2))

	err = st.ListField(obj.Fields()[2], func(ls serde.ListSerializer) error {
		return ls.SerializeString("ignored")
	})
	require.NoError(t, err)
	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)

	// Decode against a descriptor that does not declare "extra".
	x, y := decodePoint(t, provider, data)
	require.Equal(t, int32(1), x)
	require.Equal(t, int32(2), y)
}

func TestRoundTrip_List(t *testing.T) {
	provider := NewProvider()
	dfield := serde.NewFieldDescriptor("tags", serde.KindList)

	ser := provider.Serializer()

	ls, err := ser.BeginList(dfield)
	require.NoError(t, err)

	for _, tag := range []string{"a", "b", "c"} {
		require.NoError(t, ls.SerializeString(tag))
	}

	require.NoError(t, ls.EndList())

	data, err := ser.Bytes()
	require.NoError(t, err)

	deser, err := provider.Deserializer(data)
	require.NoError(t, err)

	it, err := deser.DeserializeList(dfield)
	require.NoError(t, err)

	out := []string{}
	for {
		more, err := it.HasNextElement()
		require.NoError(t, err)

		if !more {
			break
		}

		tag, err := it.ReadString()
		require.NoError(t, err)

		out = append(out, tag)
	}

	require.Equal(t, []string{"a", "b", "c"}, out)
}

func TestRoundTrip_Map(t *testing.T) {
	provider := NewProvider()
	dfield := serde.NewFieldDescriptor("attrs", serde.KindMap)

	ser := provider.Serializer()

	ms, err := ser.BeginMap(dfield)
	require.NoError(t, err)

	err = ms.SerializeInt(1)
	require.EqualError(t, err, "unexpected configuration: map value written before its key")

	require.NoError(t, ms.Key("k1"))
	require.NoError(t, ms.SerializeInt(1))
	require.NoError(t, ms.Key("k2"))
	require.NoError(t, ms.SerializeInt(2))
	require.NoError(t, ms.EndMap())

	data, err := ser.Bytes()
	require.NoError(t, err)

	deser, err := provider.Deserializer(data)
	require.NoError(t, err)

	it, err := deser.DeserializeMap(dfield)
	require.NoError(t, err)

	out := map[string]int32{}
	for {
		more, err := it.HasNextEntry()
		require.NoError(t, err)

		if !more {
			break
		}

		key, err := it.Key()
		require.NoError(t, err)

		value, err := it.ReadInt()
		require.NoError(t, err)

		out[key] = value
	}

	require.Equal(t, map[string]int32{"k1": 1, "k2": 2}, out)

	_, err = it.Key()
	require.EqualError(t, err, "unexpected configuration: key requested but no entry is pending")
}

func TestRoundTrip_NestedAggregates(t *testing.T) {
	provider := NewProvider()

	obj := serde.NewObjectBuilder().
		SetSerialName("Table").
		Field(serde.NewFieldDescriptor("rows", serde.KindList)).
		Build()

	ser := provider.Serializer()

	st, err := ser.BeginStruct(obj)
	require.NoError(t, err)

	err = st.ListField(obj.Fields()[0], func(ls serde.ListSerializer) error {
		return ls.SerializeMap(func(ms serde.MapSerializer) error {
			if err := ms.Key("k1"); err != nil {
				return err
			}
			return ms.SerializeInt(1)
		})
	})
	require.NoError(t, err)
	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)

	deser, err := provider.Deserializer(data)
	require.NoError(t, err)

	it, err := deser.DeserializeStruct(obj)
	require.NoError(t, err)

	index, err := it.FindNextFieldIndex()
	require.NoError(t, err)
	require.Equal(t, 0, index)

	rows, err := it.DeserializeList(obj.Fields()[0])
	require.NoError(t, err)

	more, err := rows.HasNextElement()
	require.NoError(t, err)
	require.True(t, more)

	entries, err := rows.DeserializeMap(obj.Fields()[0])
	require.NoError(t, err)

	more, err = entries.HasNextEntry()
	require.NoError(t, err)
	require.True(t, more)

	key, err := entries.Key()
	require.NoError(t, err)
	require.Equal(t, "k1", key)

	value, err := entries.ReadInt()
	require.NoError(t, err)
	require.Equal(t, int32(1), value)

	more, err = entries.HasNextEntry()
	require.NoError(t, err)
	require.False(t, more)

	more, err = rows.HasNextElement()
	require.NoError(t, err)
	require.False(t, more)
}

func TestRoundTrip_Scalars(t *testing.T) {
	provider := NewProvider()

	obj := serde.NewObjectBuilder().
		SetSerialName("Scalars").
		Field(serde.NewFieldDescriptor("b", serde.KindBoolean)).
		Field(serde.NewFieldDescriptor("i8", serde.KindByte)).
		Field(serde.NewFieldDescriptor("i16", serde.KindShort)).
		Field(serde.NewFieldDescriptor("c", serde.KindChar)).
		Field(serde.NewFieldDescriptor("i64", serde.KindLong)).
		Field(serde.NewFieldDescriptor("f32", serde.KindFloat)).
		Field(serde.NewFieldDescriptor("f64", serde.KindDouble)).
		Field(serde.NewFieldDescriptor("s", serde.KindString)).
		Field(serde.NewFieldDescriptor("data", serde.KindBlob)).
		Build()

	fields := obj.Fields()

	ser := provider.Serializer()

	st, err := ser.BeginStruct(obj)
	require.NoError(t, err)
	require.NoError(t, st.BoolField(fields[0], true))
	require.NoError(t, st.ByteField(fields[1], -4))
	require.NoError(t, st.ShortField(fields[2], 1000))
	require.NoError(t, st.CharField(fields[3], 'é'))
	require.NoError(t, st.LongField(fields[4], 1<<40))
	require.NoError(t, st.FloatField(fields[5], 1.5))
	require.NoError(t, st.DoubleField(fields[6], -2.25))
	require.NoError(t, st.StringField(fields[7], "hello"))
	require.NoError(t, st.BlobField(fields[8], []byte{0xDE, 0xAD}))
	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)

	deser, err := provider.Deserializer(data)
	require.NoError(t, err)

	it, err := deser.DeserializeStruct(obj)
	require.NoError(t, err)

	seen := 0

	for {
		index, err := it.FindNextFieldIndex()
		require.NoError(t, err)

		if index == serde.ExhaustedIndex {
			break
		}

		seen++

		switch index {
		case 0:
			v, err := it.ReadBool()
			require.NoError(t, err)
			require.True(t, v)
		case 1:
			v, err := it.ReadByte()
			require.NoError(t, err)
			require.Equal(t, int8(-4), v)
		case 2:
			v, err := it.ReadShort()
			require.NoError(t, err)
			require.Equal(t, int16(1000), v)
		case 3:
			v, err := it.ReadChar()
			require.NoError(t, err)
			require.Equal(t, 'é', v)
		case 4:
			v, err := it.ReadLong()
			require.NoError(t, err)
			require.Equal(t, int64(1<<40), v)
		case 5:
			v, err := it.ReadFloat()
			require.NoError(t, err)
			require.Equal(t, float32(1.5), v)
		case 6:
			v, err := it.ReadDouble()
			require.NoError(t, err)
			require.Equal(t, -2.25, v)
		case 7:
			v, err := it.ReadString()
			require.NoError(t, err)
			require.Equal(t, "hello", v)
		case 8:
			v, err := it.ReadBlob()
			require.NoError(t, err)
			require.Equal(t, []byte{0xDE, 0xAD}, v)
		default:
			t.Fatalf("unexpected index %d", index)
		}
	}

	require.Equal(t, obj.NumFields(), seen)
}

func TestRoundTrip_Timestamp(t *testing.T) {
	provider := NewProvider()

	when := time.Date(2019, time.December, 16, 23, 48, 18, 0, time.UTC)

	obj := serde.NewObjectBuilder().
		SetSerialName("Times").
		Field(serde.NewFieldDescriptor("epoch", serde.KindTimestamp)).
		Field(serde.NewFieldDescriptor("rfc", serde.KindTimestamp,
			serde.TimestampFormat{Format: serde.TimestampRFC3339})).
		Build()

	ser := provider.Serializer()

	st, err := ser.BeginStruct(obj)
	require.NoError(t, err)

	for _, f := range obj.Fields() {
		require.NoError(t, st.TimestampField(f, when))
	}

	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)

	deser, err := provider.Deserializer(data)
	require.NoError(t, err)

	it, err := deser.DeserializeStruct(obj)
	require.NoError(t, err)

	formats := []serde.TimestampFormatKind{
		serde.TimestampEpochSeconds,
		serde.TimestampRFC3339,
	}

	for {
		index, err := it.FindNextFieldIndex()
		require.NoError(t, err)

		if index == serde.ExhaustedIndex {
			break
		}

		got, err := it.ReadTimestamp(formats[index])
		require.NoError(t, err)
		require.True(t, when.Equal(got))
	}
}

func TestRoundTrip_EpochTimestamp(t *testing.T) {
	provider := NewProvider()

	// Epoch timestamps ride as a float, so the sub-second part survives.
	when := time.Date(2019, time.December, 16, 23, 48, 18, 500000000, time.UTC)

	ser := provider.Serializer()
	require.NoError(t, ser.SerializeTimestamp(when, serde.TimestampEpochSeconds))

	data, err := ser.Bytes()
	require.NoError(t, err)

	deser, err := provider.Deserializer(data)
	require.NoError(t, err)

	got, err := deser.(*deserializer).ReadTimestamp(serde.TimestampEpochSeconds)
	require.NoError(t, err)
	require.True(t, when.Equal(got))
}

func TestRoundTrip_BigNumber(t *testing.T) {
	provider := NewProvider()

	value, _, err := big.ParseFloat("123456789123456789.5", 10, 212, big.ToNearestEven)
	require.NoError(t, err)

	ser := provider.Serializer()
	require.NoError(t, ser.SerializeBigNumber(value))

	data, err := ser.Bytes()
	require.NoError(t, err)

	deser, err := provider.Deserializer(data)
	require.NoError(t, err)

	got, err := deser.(*deserializer).ReadBigNumber()
	require.NoError(t, err)
	require.Zero(t, value.Cmp(got))
}

func TestRoundTrip_Document(t *testing.T) {
	provider := NewProvider()

	// A single-entry map keeps the comparison deterministic: decoded map
	// entries arrive in unspecified order.
	doc := serde.MapDocument{
		{Key: "tags", Value: serde.ListDocument{
			serde.NumberDocument(1),
			serde.BoolDocument(true),
			serde.StringDocument("a"),
			serde.NullDocument{},
		}},
	}

	ser := provider.Serializer()
	require.NoError(t, ser.SerializeDocument(doc))

	data, err := ser.Bytes()
	require.NoError(t, err)

	deser, err := provider.Deserializer(data)
	require.NoError(t, err)

	got, err := deser.(*deserializer).ReadDocument()
	require.NoError(t, err)
	require.Equal(t, doc, got)
}

func TestDeserializer_Null(t *testing.T) {
	provider := NewProvider()

	ser := provider.Serializer()

	st, err := ser.BeginStruct(pointDescriptor)
	require.NoError(t, err)
	require.NoError(t, st.NullField(pointDescriptor.Fields()[0]))
	require.NoError(t, st.IntField(pointDescriptor.Fields()[1], 2))
	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)

	deser, err := provider.Deserializer(data)
	require.NoError(t, err)

	it, err := deser.DeserializeStruct(pointDescriptor)
	require.NoError(t, err)

	for {
		index, err := it.FindNextFieldIndex()
		require.NoError(t, err)

		if index == serde.ExhaustedIndex {
			break
		}

		switch index {
		case 0:
			isNull, err := it.NextIsNull()
			require.NoError(t, err)
			require.True(t, isNull)

			require.NoError(t, it.ReadNull())
		case 1:
			v, err := it.ReadInt()
			require.NoError(t, err)
			require.Equal(t, int32(2), v)
		}
	}
}

func TestDeserializer_TypeMismatch(t *testing.T) {
	provider := NewProvider()

	ser := provider.Serializer()

	st, err := ser.BeginStruct(pointDescriptor)
	require.NoError(t, err)
	require.NoError(t, st.StringField(pointDescriptor.Fields()[0], "oops"))
	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)

	deser, err := provider.Deserializer(data)
	require.NoError(t, err)

	it, err := deser.DeserializeStruct(pointDescriptor)
	require.NoError(t, err)

	index, err := it.FindNextFieldIndex()
	require.NoError(t, err)
	require.Equal(t, 0, index)

	_, err = it.ReadInt()
	require.EqualError(t, err, "decoding failed: expected a 32-bit integer, found a text string")
	require.True(t, serde.IsDecodeError(err))
}

// -----------------------------------------------------------------------------
// Utility functions

func decodePoint(t *testing.T, provider serde.Provider, data []byte) (int32, int32) {
	t.Helper()

	deser, err := provider.Deserializer(data)
	require.NoError(t, err)

	it, err := deser.DeserializeStruct(pointDescriptor)
	require.NoError(t, err)

	var x, y int32

	for {
		index, err := it.FindNextFieldIndex()
		require.NoError(t, err)

		if index == serde.ExhaustedIndex {
			break
		}

		switch index {
		case 0:
			x, err = it.ReadInt()
			require.NoError(t, err)
		case 1:
			y, err = it.ReadInt()
			require.NoError(t, err)
		case serde.UnknownFieldIndex:
			require.NoError(t, it.SkipValue())
		default:
			t.Fatalf("unexpected index %d", index)
		}
	}

	return x, y
}
