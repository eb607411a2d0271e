package formurl

import (
	"testing"
	"time"

	"github.com/sableio/sable/serde"
	"github.com/stretchr/testify/require"
)

func TestProvider_GetFormat(t *testing.T) {
	require.Equal(t, serde.FormatFormURL, NewProvider().GetFormat())
}

func TestProvider_NoDeserializer(t *testing.T) {
	_, err := NewProvider().Deserializer([]byte("a=1"))
	require.EqualError(t, err, "unexpected configuration: the form-url format cannot deserialize")
	require.True(t, serde.IsConfigError(err))
}

func TestSerializer_Struct(t *testing.T) {
	obj := serde.NewObjectBuilder().
		Field(serde.NewFieldDescriptor("x", serde.KindInteger)).
		Field(serde.NewFieldDescriptor("y", serde.KindInteger)).
		Build()

	ser := NewProvider().Serializer()

	st, err := ser.BeginStruct(obj)
	require.NoError(t, err)
	require.NoError(t, st.IntField(obj.Fields()[0], 1))
	require.NoError(t, st.IntField(obj.Fields()[1], 2))
	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)
	require.Equal(t, `x=1&y=2`, string(data))
}

func TestSerializer_QueryLiterals(t *testing.T) {
	obj := serde.NewObjectBuilder().
		SetSerialName("DescribeThingsRequest").
		AddTrait(serde.QueryLiteral{Key: "Action", Value: "DescribeThings"}).
		AddTrait(serde.QueryLiteral{Key: "Version", Value: "2016-11-15"}).
		Field(serde.NewFieldDescriptor("MaxResults", serde.KindInteger)).
		Build()

	ser := NewProvider().Serializer()

	st, err := ser.BeginStruct(obj)
	require.NoError(t, err)
	require.NoError(t, st.IntField(obj.Fields()[0], 10))
	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)
	require.Equal(t, `Action=DescribeThings&Version=2016-11-15&MaxResults=10`, string(data))
}

func TestSerializer_NestedStruct(t *testing.T) {
	inner := serde.NewObjectBuilder().
		Field(serde.NewFieldDescriptor("Name", serde.KindString)).
		Build()

	obj := serde.NewObjectBuilder().
		Field(serde.NewFieldDescriptor("Filter", serde.KindStruct)).
		Build()

	ser := NewProvider().Serializer()

	st, err := ser.BeginStruct(obj)
	require.NoError(t, err)

	err = st.StructField(obj.Fields()[0], func(nested serde.StructSerializer) error {
		return nested.StringField(inner.Fields()[0], "state")
	})
	require.NoError(t, err)
	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)
	require.Equal(t, `Filter.Name=state`, string(data))
}

func TestSerializer_WrappedList(t *testing.T) {
	obj := serde.NewObjectBuilder().
		Field(serde.NewFieldDescriptor("tags", serde.KindList)).
		Build()

	ser := NewProvider().Serializer()

	st, err := ser.BeginStruct(obj)
	require.NoError(t, err)

	err = st.ListField(obj.Fields()[0], func(ls serde.ListSerializer) error {
		for _, tag := range []string{"a", "b"} {
			if err := ls.SerializeString(tag); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)
	require.Equal(t, `tags.member.1=a&tags.member.2=b`, string(data))
}

func TestSerializer_FlattenedList(t *testing.T) {
	obj := serde.NewObjectBuilder().
		Field(serde.NewFieldDescriptor("tags", serde.KindList, serde.XMLFlattened{})).
		Build()

	ser := NewProvider().Serializer()

	st, err := ser.BeginStruct(obj)
	require.NoError(t, err)

	err = st.ListField(obj.Fields()[0], func(ls serde.ListSerializer) error {
		for _, tag := range []string{"a", "b"} {
			if err := ls.SerializeString(tag); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)
	require.Equal(t, `tags.1=a&tags.2=b`, string(data))
}

func TestSerializer_EmptyList(t *testing.T) {
	// An empty list is still visible on the wire.
	obj := serde.NewObjectBuilder().
		Field(serde.NewFieldDescriptor("tags", serde.KindList)).
		Build()

	ser := NewProvider().Serializer()

	st, err := ser.BeginStruct(obj)
	require.NoError(t, err)

	err = st.ListField(obj.Fields()[0], func(serde.ListSerializer) error {
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)
	require.Equal(t, `tags.member=`, string(data))
}

func TestSerializer_Map(t *testing.T) {
	obj := serde.NewObjectBuilder().
		Field(serde.NewFieldDescriptor("attrs", serde.KindMap)).
		Build()

	ser := NewProvider().Serializer()

	st, err := ser.BeginStruct(obj)
	require.NoError(t, err)

	err = st.MapField(obj.Fields()[0], func(ms serde.MapSerializer) error {
		if err := ms.Key("k1"); err != nil {
			return err
		}
		if err := ms.SerializeInt(1); err != nil {
			return err
		}
		if err := ms.Key("k2"); err != nil {
			return err
		}
		return ms.SerializeInt(2)
	})
	require.NoError(t, err)
	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)
	require.Equal(t,
		`attrs.entry.1.key=k1&attrs.entry.1.value=1&attrs.entry.2.key=k2&attrs.entry.2.value=2`,
		string(data))
}

func TestSerializer_MapKeyProtocol(t *testing.T) {
	ser := NewProvider().Serializer()

	ms, err := ser.BeginMap(serde.NewFieldDescriptor("attrs", serde.KindMap))
	require.NoError(t, err)

	err = ms.SerializeInt(1)
	require.EqualError(t, err, "unexpected configuration: map value written before its key")

	require.NoError(t, ms.Key("k1"))

	err = ms.Key("k2")
	require.EqualError(t, err, "unexpected configuration: key 'k2' written while a value is pending")

	require.NoError(t, ms.SerializeInt(1))

	err = ms.Key("k2")
	require.NoError(t, err)

	err = ms.EndMap()
	require.EqualError(t, err, "unexpected configuration: map closed with a pending key")

	require.NoError(t, ms.SerializeInt(2))
	require.NoError(t, ms.EndMap())

	data, err := ser.Bytes()
	require.NoError(t, err)
	require.Equal(t,
		`attrs.entry.1.key=k1&attrs.entry.1.value=1&attrs.entry.2.key=k2&attrs.entry.2.value=2`,
		string(data))
}

func TestSerializer_Escaping(t *testing.T) {
	obj := serde.NewObjectBuilder().
		Field(serde.NewFieldDescriptor("q", serde.KindString)).
		Build()

	ser := NewProvider().Serializer()

	st, err := ser.BeginStruct(obj)
	require.NoError(t, err)
	require.NoError(t, st.StringField(obj.Fields()[0], "a b&c=d"))
	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)
	require.Equal(t, `q=a+b%26c%3Dd`, string(data))
}

func TestSerializer_Timestamp(t *testing.T) {
	when := time.Date(2019, time.December, 16, 23, 48, 18, 0, time.UTC)

	obj := serde.NewObjectBuilder().
		Field(serde.NewFieldDescriptor("since", serde.KindTimestamp,
			serde.TimestampFormat{Format: serde.TimestampRFC3339})).
		Build()

	ser := NewProvider().Serializer()

	st, err := ser.BeginStruct(obj)
	require.NoError(t, err)
	require.NoError(t, st.TimestampField(obj.Fields()[0], when))
	require.NoError(t, st.EndStruct())

	data, err := ser.Bytes()
	require.NoError(t, err)
	require.Equal(t, `since=2019-12-16T23%3A48%3A18Z`, string(data))
}

func TestSerializer_RootScalar(t *testing.T) {
	ser := NewProvider().Serializer()

	err := ser.SerializeInt(1)
	require.EqualError(t, err, "unexpected configuration: the form-url format requires named members")
}

func TestSerializer_Misuse(t *testing.T) {
	obj := serde.NewObjectBuilder().
		Field(serde.NewFieldDescriptor("x", serde.KindInteger)).
		Build()

	ser := NewProvider().Serializer()

	st, err := ser.BeginStruct(obj)
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
