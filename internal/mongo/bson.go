package mongo

import "go.mongodb.org/mongo-driver/bson"

// Small helpers to keep index declarations readable.

func bsonD(k string, v int) bson.D {
	return bson.D{{Key: k, Value: v}}
}

func bsonD2(k1 string, v1 int, k2 string, v2 int) bson.D {
	return bson.D{{Key: k1, Value: v1}, {Key: k2, Value: v2}}
}

func bsonD3(k1 string, v1 int, k2 string, v2 int, k3 string, v3 int) bson.D {
	return bson.D{{Key: k1, Value: v1}, {Key: k2, Value: v2}, {Key: k3, Value: v3}}
}
